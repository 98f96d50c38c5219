package domain

import (
	"sync"
	"time"
)

// FeeSchedule holds the per-marketplace fee configuration. All amounts are
// integral token units; the commission is a fraction applied at settlement.
type FeeSchedule struct {
	FeeRecipient          string
	ListingFee            uint64
	BidFee                uint64
	CommissionNumerator   uint64
	CommissionDenominator uint64
}

// ValidateCommission checks the commission fraction invariant: the
// denominator must be non-zero and the commission may never exceed 50%.
func ValidateCommission(numerator, denominator uint64) error {
	if denominator == 0 || numerator > denominator/2 {
		return ErrInvalidFeeConfig
	}
	return nil
}

// Marketplace is a named, owned custody domain. Listings are created under
// its authority and settle against its fee schedule.
type Marketplace struct {
	MarketplaceID string
	Owner         string
	Fees          FeeSchedule
	CreatedAt     time.Time
	Mu            sync.Mutex // guards Fees mutations
}

// FeeSnapshot returns a copy of the fee schedule taken under the
// marketplace lock, so settlements read a consistent configuration.
func (m *Marketplace) FeeSnapshot() FeeSchedule {
	m.Mu.Lock()
	defer m.Mu.Unlock()
	return m.Fees
}
