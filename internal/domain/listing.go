package domain

import (
	"sync"
	"time"
)

// MinListingDuration is the shortest allowed auction duration. List rejects
// anything not strictly longer.
const MinListingDuration = 300 * time.Second

// Bid is the currently escrowed bid against a single listing. At most one
// exists per listing at any time: a strictly higher bid replaces it (the
// old principal is refunded) and settlement consumes it.
type Bid struct {
	Bidder string
	Escrow EscrowedFunds
}

// Listing is one escrowed auction/instant-sale record. While it exists it
// exclusively owns the underlying asset (the registry reports the
// ListingID as owner) and, transiently, the highest bid's escrowed funds.
// It is terminal and single-use: settlement or withdrawal destroys it.
type Listing struct {
	ListingID      string
	MarketplaceID  string
	Asset          string
	Seller         string
	MinBid         uint64
	InstantPrice   uint64
	StartTime      time.Time
	ExpirationTime time.Time
	HighestBid     *Bid

	Mu     sync.Mutex // serializes all state-changing operations on this listing
	Closed bool       // set under Mu when the listing is destroyed
}

// Expired reports whether the listing's deadline has passed. Bids and buys
// are admitted up to and including the deadline; completion requires the
// clock to be strictly past it.
func (l *Listing) Expired(now time.Time) bool {
	return now.After(l.ExpirationTime)
}

// TakeBid removes and returns the standing bid, or nil if there is none.
// Callers must hold Mu.
func (l *Listing) TakeBid() *Bid {
	b := l.HighestBid
	l.HighestBid = nil
	return b
}
