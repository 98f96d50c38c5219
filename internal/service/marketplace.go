package service

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/store"
)

var accountIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_:-]{1,64}$`)

// Fee schedule field names as reported by fee_schedule.changed events.
const (
	FieldFeeRecipient = "fee_recipient"
	FieldListingFee   = "listing_fee"
	FieldBidFee       = "bid_fee"
	FieldCommission   = "commission"
)

// CreateMarketplaceRequest represents the input for marketplace creation.
type CreateMarketplaceRequest struct {
	Owner                 string
	FeeRecipient          string
	ListingFee            uint64
	BidFee                uint64
	CommissionNumerator   uint64
	CommissionDenominator uint64
}

// MarketplaceService handles marketplace creation and fee schedule
// administration. Every setter mutates exactly one logical property, under
// the marketplace owner's authority, and emits a field-change event.
type MarketplaceService struct {
	store  *store.MarketplaceStore
	events domain.EventSink
}

// NewMarketplaceService creates a new MarketplaceService.
func NewMarketplaceService(s *store.MarketplaceStore, events domain.EventSink) *MarketplaceService {
	return &MarketplaceService{store: s, events: events}
}

func (s *MarketplaceService) publish(ev domain.Event) {
	if s.events != nil {
		s.events.Publish(ev)
	}
}

// Create validates the request and creates a marketplace.
func (s *MarketplaceService) Create(req CreateMarketplaceRequest) (*domain.Marketplace, error) {
	if !accountIDRegex.MatchString(req.Owner) {
		return nil, &domain.ValidationError{
			Message: "owner must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	if !accountIDRegex.MatchString(req.FeeRecipient) {
		return nil, &domain.ValidationError{
			Message: "fee_recipient must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	if err := domain.ValidateCommission(req.CommissionNumerator, req.CommissionDenominator); err != nil {
		return nil, err
	}

	m := &domain.Marketplace{
		MarketplaceID: uuid.New().String(),
		Owner:         req.Owner,
		Fees: domain.FeeSchedule{
			FeeRecipient:          req.FeeRecipient,
			ListingFee:            req.ListingFee,
			BidFee:                req.BidFee,
			CommissionNumerator:   req.CommissionNumerator,
			CommissionDenominator: req.CommissionDenominator,
		},
		CreatedAt: time.Now(),
	}
	s.store.Create(m)
	return m, nil
}

// GetFeeSchedule returns the marketplace's current fee schedule.
func (s *MarketplaceService) GetFeeSchedule(marketplaceID string) (domain.FeeSchedule, error) {
	m, err := s.store.Get(marketplaceID)
	if err != nil {
		return domain.FeeSchedule{}, err
	}
	return m.FeeSnapshot(), nil
}

// SetFeeRecipient changes where listing fees, bid fees, and commission are
// paid. Caller must be the marketplace owner.
func (s *MarketplaceService) SetFeeRecipient(caller, marketplaceID, recipient string) error {
	if !accountIDRegex.MatchString(recipient) {
		return &domain.ValidationError{
			Message: "fee_recipient must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	return s.mutate(caller, marketplaceID, FieldFeeRecipient, func(fees *domain.FeeSchedule) error {
		fees.FeeRecipient = recipient
		return nil
	})
}

// SetListingFee changes the flat fee charged to sellers at listing time.
func (s *MarketplaceService) SetListingFee(caller, marketplaceID string, fee uint64) error {
	return s.mutate(caller, marketplaceID, FieldListingFee, func(fees *domain.FeeSchedule) error {
		fees.ListingFee = fee
		return nil
	})
}

// SetBidFee changes the flat fee charged to bidders per bid attempt.
func (s *MarketplaceService) SetBidFee(caller, marketplaceID string, fee uint64) error {
	return s.mutate(caller, marketplaceID, FieldBidFee, func(fees *domain.FeeSchedule) error {
		fees.BidFee = fee
		return nil
	})
}

// SetCommission changes the commission fraction taken at settlement. The
// numerator and denominator change together as one logical property.
func (s *MarketplaceService) SetCommission(caller, marketplaceID string, numerator, denominator uint64) error {
	return s.mutate(caller, marketplaceID, FieldCommission, func(fees *domain.FeeSchedule) error {
		if err := domain.ValidateCommission(numerator, denominator); err != nil {
			return err
		}
		fees.CommissionNumerator = numerator
		fees.CommissionDenominator = denominator
		return nil
	})
}

// mutate applies one field change under the owner authorization check and
// the marketplace lock, then emits the field-change event.
func (s *MarketplaceService) mutate(caller, marketplaceID, field string, apply func(*domain.FeeSchedule) error) error {
	m, err := s.store.Get(marketplaceID)
	if err != nil {
		return err
	}
	if m.Owner != caller {
		return domain.ErrUnauthorized
	}

	m.Mu.Lock()
	err = apply(&m.Fees)
	m.Mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(domain.FeeScheduleChangedEvent{
		MarketplaceID: marketplaceID,
		Field:         field,
	})
	return nil
}
