package domain

import "time"

// Event names as seen by webhook subscribers.
const (
	EventListingStarted     = "listing.started"
	EventBidChanged         = "bid.changed"
	EventSaleCompleted      = "sale.completed"
	EventAuctionEnded       = "auction.ended"
	EventFeeScheduleChanged = "fee_schedule.changed"
)

// Event is a domain event emitted by the engine or the marketplace
// administration. Events are a side channel for external indexers; the core
// never stores or re-reads them.
type Event interface {
	EventName() string
}

// EventSink receives domain events. It is injected into the engine so the
// core stays testable without a live indexer. Publish must not block the
// calling operation.
type EventSink interface {
	Publish(Event)
}

// ListingStartedEvent is emitted when a listing is created.
type ListingStartedEvent struct {
	MarketplaceID  string
	ListingID      string
	Asset          string
	Seller         string
	MinBid         uint64
	InstantPrice   uint64
	StartTime      time.Time
	ExpirationTime time.Time
}

func (ListingStartedEvent) EventName() string { return EventListingStarted }

// BidChangedEvent is emitted when a bid is accepted. The Prev fields are
// nil for the first bid on a listing.
type BidChangedEvent struct {
	MarketplaceID string
	ListingID     string
	PrevBidder    *string
	PrevAmount    *uint64
	NewBidder     string
	NewAmount     uint64
}

func (BidChangedEvent) EventName() string { return EventBidChanged }

// SaleCompletedEvent is emitted at settlement, after all funds have been
// distributed and custody of the asset has moved to the buyer.
type SaleCompletedEvent struct {
	MarketplaceID  string
	ListingID      string
	Asset          string
	Seller         string
	Buyer          string
	Price          uint64
	RoyaltyPaid    uint64
	CommissionPaid uint64
	SellerProceeds uint64
}

func (SaleCompletedEvent) EventName() string { return EventSaleCompleted }

// AuctionEndedEvent is emitted when a listing is destroyed without a sale:
// seller withdrawal, or completion of an expired auction with no bid.
type AuctionEndedEvent struct {
	MarketplaceID string
	ListingID     string
	Asset         string
	Seller        string
}

func (AuctionEndedEvent) EventName() string { return EventAuctionEnded }

// FeeScheduleChangedEvent is emitted on every successful fee schedule
// mutation, naming the mutated field.
type FeeScheduleChangedEvent struct {
	MarketplaceID string
	Field         string
}

func (FeeScheduleChangedEvent) EventName() string { return EventFeeScheduleChanged }
