package service

import (
	"time"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/engine"
	"github.com/efreitasn/auctionhouse/internal/store"
)

// ListRequest represents the input for listing creation.
type ListRequest struct {
	Seller          string
	MarketplaceID   string
	Asset           string
	MinBid          uint64
	InstantPrice    uint64
	DurationSeconds int64
}

// BidRequest represents the input for placing a bid.
type BidRequest struct {
	Bidder        string
	MarketplaceID string
	ListingID     string
	Amount        uint64
}

// BidView is the standing bid in a listing snapshot.
type BidView struct {
	Bidder string
	Amount uint64
}

// ListingView is a consistent read-only snapshot of a listing, taken under
// the listing lock so a settlement in flight is never half-observed.
type ListingView struct {
	ListingID      string
	MarketplaceID  string
	Asset          string
	Seller         string
	MinBid         uint64
	InstantPrice   uint64
	StartTime      time.Time
	ExpirationTime time.Time
	HighestBid     *BidView
}

// ListingService validates requests and drives the settlement engine.
type ListingService struct {
	engine   *engine.Engine
	listings *store.ListingStore
}

// NewListingService creates a new ListingService.
func NewListingService(e *engine.Engine, listings *store.ListingStore) *ListingService {
	return &ListingService{engine: e, listings: listings}
}

// List validates the request and creates a listing.
func (s *ListingService) List(req ListRequest) (*ListingView, error) {
	if !accountIDRegex.MatchString(req.Seller) {
		return nil, &domain.ValidationError{
			Message: "seller must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	if req.Asset == "" {
		return nil, &domain.ValidationError{Message: "asset is required"}
	}
	if req.InstantPrice == 0 {
		return nil, &domain.ValidationError{Message: "instant_price must be a positive integer"}
	}
	if req.DurationSeconds <= 0 {
		return nil, &domain.ValidationError{Message: "duration_seconds must be a positive integer"}
	}

	l, err := s.engine.List(
		req.Seller,
		req.MarketplaceID,
		req.Asset,
		req.MinBid,
		req.InstantPrice,
		time.Duration(req.DurationSeconds)*time.Second,
	)
	if err != nil {
		return nil, err
	}
	return snapshot(l), nil
}

// PlaceBid validates the request and places a bid.
func (s *ListingService) PlaceBid(req BidRequest) error {
	if !accountIDRegex.MatchString(req.Bidder) {
		return &domain.ValidationError{
			Message: "bidder must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	if req.Amount == 0 {
		return &domain.ValidationError{Message: "amount must be a positive integer"}
	}

	return s.engine.PlaceBid(req.Bidder, req.MarketplaceID, req.ListingID, req.Amount)
}

// Buy settles a listing at its instant price.
func (s *ListingService) Buy(buyer, marketplaceID, listingID string) (*domain.SaleCompletedEvent, error) {
	if !accountIDRegex.MatchString(buyer) {
		return nil, &domain.ValidationError{
			Message: "buyer must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	return s.engine.Buy(buyer, marketplaceID, listingID)
}

// BuyMultiple settles several listings at their instant prices,
// best-effort: sales completed before the first failure stand.
func (s *ListingService) BuyMultiple(buyer, marketplaceID string, listingIDs []string) ([]*domain.SaleCompletedEvent, error) {
	if !accountIDRegex.MatchString(buyer) {
		return nil, &domain.ValidationError{
			Message: "buyer must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	if len(listingIDs) == 0 {
		return nil, &domain.ValidationError{Message: "listing_ids must be a non-empty array"}
	}
	return s.engine.BuyMultiple(buyer, marketplaceID, listingIDs)
}

// AcceptHighestBid settles at the standing bid on the seller's request.
func (s *ListingService) AcceptHighestBid(seller, marketplaceID, listingID string) (*domain.SaleCompletedEvent, error) {
	return s.engine.AcceptHighestBid(seller, marketplaceID, listingID)
}

// CompleteAuction finalizes an expired listing.
func (s *ListingService) CompleteAuction(caller, marketplaceID, listingID string) (*domain.SaleCompletedEvent, error) {
	return s.engine.CompleteAuction(caller, marketplaceID, listingID)
}

// RemoveListing withdraws a listing on the seller's request.
func (s *ListingService) RemoveListing(seller, listingID string) error {
	return s.engine.RemoveListing(seller, listingID)
}

// GetListing returns a snapshot of a live listing.
func (s *ListingService) GetListing(listingID string) (*ListingView, error) {
	l, err := s.listings.Get(listingID)
	if err != nil {
		return nil, err
	}

	l.Mu.Lock()
	defer l.Mu.Unlock()
	if l.Closed {
		return nil, domain.ErrListingNotFound
	}
	return snapshotLocked(l), nil
}

// ListByMarketplace returns snapshots of the marketplace's live listings.
func (s *ListingService) ListByMarketplace(marketplaceID string) []*ListingView {
	listings := s.listings.ListByMarketplace(marketplaceID)
	views := make([]*ListingView, 0, len(listings))
	for _, l := range listings {
		l.Mu.Lock()
		if !l.Closed {
			views = append(views, snapshotLocked(l))
		}
		l.Mu.Unlock()
	}
	return views
}

func snapshot(l *domain.Listing) *ListingView {
	l.Mu.Lock()
	defer l.Mu.Unlock()
	return snapshotLocked(l)
}

func snapshotLocked(l *domain.Listing) *ListingView {
	v := &ListingView{
		ListingID:      l.ListingID,
		MarketplaceID:  l.MarketplaceID,
		Asset:          l.Asset,
		Seller:         l.Seller,
		MinBid:         l.MinBid,
		InstantPrice:   l.InstantPrice,
		StartTime:      l.StartTime,
		ExpirationTime: l.ExpirationTime,
	}
	if l.HighestBid != nil {
		v.HighestBid = &BidView{
			Bidder: l.HighestBid.Bidder,
			Amount: l.HighestBid.Escrow.Amount(),
		}
	}
	return v
}
