package engine

import (
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/store"
)

// Engine implements the listing lifecycle and the settlement algorithm.
//
// Every state-changing operation is a single atomic transition on one
// listing: the per-listing mutex is held for the whole operation, and all
// preconditions are checked before any funds or assets move (the bid fee is
// the one documented exception, see PlaceBid). Operations on different
// listings proceed in parallel; the ledger and registry are atomic per call.
type Engine struct {
	marketplaces *store.MarketplaceStore
	listings     *store.ListingStore
	ledger       domain.Ledger
	registry     domain.AssetRegistry
	events       domain.EventSink
	now          func() time.Time
}

// NewEngine creates an Engine with the given collaborators. The event sink
// may be nil, in which case events are discarded.
func NewEngine(
	marketplaces *store.MarketplaceStore,
	listings *store.ListingStore,
	ledger domain.Ledger,
	registry domain.AssetRegistry,
	events domain.EventSink,
) *Engine {
	return &Engine{
		marketplaces: marketplaces,
		listings:     listings,
		ledger:       ledger,
		registry:     registry,
		events:       events,
		now:          time.Now,
	}
}

func (e *Engine) publish(ev domain.Event) {
	if e.events != nil {
		e.events.Publish(ev)
	}
}

// List escrows an asset into a new listing under the marketplace's
// authority. The seller must currently own the asset and the duration must
// exceed the minimum. The listing fee, if configured, is charged to the
// seller up front and is kept whether or not the listing ever sells.
func (e *Engine) List(seller, marketplaceID, asset string, minBid, instantPrice uint64, duration time.Duration) (*domain.Listing, error) {
	mp, err := e.marketplaces.Get(marketplaceID)
	if err != nil {
		return nil, err
	}
	if duration <= domain.MinListingDuration {
		return nil, domain.ErrDurationTooShort
	}
	if !e.registry.IsOwner(asset, seller) {
		return nil, domain.ErrNotOwner
	}

	now := e.now()
	l := &domain.Listing{
		ListingID:      uuid.New().String(),
		MarketplaceID:  marketplaceID,
		Asset:          asset,
		Seller:         seller,
		MinBid:         minBid,
		InstantPrice:   instantPrice,
		StartTime:      now,
		ExpirationTime: now.Add(duration),
	}

	// The transfer re-checks ownership atomically, so a concurrent move of
	// the asset between the precondition and here surfaces as ErrNotOwner.
	if err := e.registry.TransferOwnership(asset, seller, l.ListingID); err != nil {
		return nil, err
	}

	fees := mp.FeeSnapshot()
	if fees.ListingFee > 0 {
		if err := e.ledger.Transfer(seller, fees.FeeRecipient, fees.ListingFee); err != nil {
			// Hand the asset back so a fee failure leaves no trace.
			_ = e.registry.TransferOwnership(asset, l.ListingID, seller)
			return nil, err
		}
	}

	e.listings.Create(l)

	e.publish(domain.ListingStartedEvent{
		MarketplaceID:  marketplaceID,
		ListingID:      l.ListingID,
		Asset:          asset,
		Seller:         seller,
		MinBid:         minBid,
		InstantPrice:   instantPrice,
		StartTime:      l.StartTime,
		ExpirationTime: l.ExpirationTime,
	})

	return l, nil
}

// PlaceBid escrows a new highest bid against the listing, refunding the
// previous bid's principal in full.
//
// The bid fee is charged before the amount comparison and is never
// refunded, even when the bid is then rejected as too low: the bidder's
// cost model is "every bid attempt costs the fee", which deters frivolous
// bidding. A first bid must reach MinBid; every later bid must strictly
// exceed the standing one, so ties are rejected.
func (e *Engine) PlaceBid(bidder, marketplaceID, listingID string, amount uint64) error {
	mp, err := e.marketplaces.Get(marketplaceID)
	if err != nil {
		return err
	}
	l, err := e.listings.Get(listingID)
	if err != nil {
		return err
	}

	l.Mu.Lock()
	defer l.Mu.Unlock()

	if l.Closed {
		return domain.ErrListingNotFound
	}
	if l.MarketplaceID != marketplaceID {
		return domain.ErrListingNotOnMarketplace
	}
	if l.Expired(e.now()) {
		return domain.ErrListingExpired
	}

	fees := mp.FeeSnapshot()
	if fees.BidFee > 0 {
		if err := e.ledger.Transfer(bidder, fees.FeeRecipient, fees.BidFee); err != nil {
			return err
		}
	}

	if l.HighestBid == nil {
		if amount < l.MinBid {
			return domain.ErrBidTooLow
		}
	} else if amount <= l.HighestBid.Escrow.Amount() {
		return domain.ErrBidTooLow
	}

	escrow, err := e.ledger.Withdraw(bidder, amount)
	if err != nil {
		return err
	}

	var prevBidder *string
	var prevAmount *uint64
	if prev := l.TakeBid(); prev != nil {
		pb, pa := prev.Bidder, prev.Escrow.Amount()
		prevBidder, prevAmount = &pb, &pa
		e.ledger.Deposit(prev.Bidder, prev.Escrow)
	}
	l.HighestBid = &domain.Bid{Bidder: bidder, Escrow: escrow}

	e.publish(domain.BidChangedEvent{
		MarketplaceID: marketplaceID,
		ListingID:     listingID,
		PrevBidder:    prevBidder,
		PrevAmount:    prevAmount,
		NewBidder:     bidder,
		NewAmount:     amount,
	})

	return nil
}

// Buy settles the listing immediately at its instant price, with the buyer
// as new owner. Any standing bid is refunded during settlement.
func (e *Engine) Buy(buyer, marketplaceID, listingID string) (*domain.SaleCompletedEvent, error) {
	mp, err := e.marketplaces.Get(marketplaceID)
	if err != nil {
		return nil, err
	}
	l, err := e.listings.Get(listingID)
	if err != nil {
		return nil, err
	}

	l.Mu.Lock()
	defer l.Mu.Unlock()

	if l.Closed {
		return nil, domain.ErrListingNotFound
	}
	if l.MarketplaceID != marketplaceID {
		return nil, domain.ErrListingNotOnMarketplace
	}
	if l.Expired(e.now()) {
		return nil, domain.ErrListingExpired
	}

	price, err := e.ledger.Withdraw(buyer, l.InstantPrice)
	if err != nil {
		return nil, err
	}

	return e.settleLocked(mp, l, buyer, price), nil
}

// BuyMultiple settles several listings at their instant prices. Listings
// are processed independently and sequentially, each under its own lock:
// the first failure aborts the remainder of the batch and is returned
// together with the sales already completed. Completed settlements stand;
// they are terminal and cannot be compensated.
func (e *Engine) BuyMultiple(buyer, marketplaceID string, listingIDs []string) ([]*domain.SaleCompletedEvent, error) {
	sales := make([]*domain.SaleCompletedEvent, 0, len(listingIDs))
	for _, id := range listingIDs {
		sale, err := e.Buy(buyer, marketplaceID, id)
		if err != nil {
			return sales, err
		}
		sales = append(sales, sale)
	}
	return sales, nil
}

// AcceptHighestBid lets the seller end the auction early by settling at the
// standing bid. Only the seller may call it; it requires a bid to exist.
func (e *Engine) AcceptHighestBid(seller, marketplaceID, listingID string) (*domain.SaleCompletedEvent, error) {
	mp, err := e.marketplaces.Get(marketplaceID)
	if err != nil {
		return nil, err
	}
	l, err := e.listings.Get(listingID)
	if err != nil {
		return nil, err
	}

	l.Mu.Lock()
	defer l.Mu.Unlock()

	if l.Closed {
		return nil, domain.ErrListingNotFound
	}
	if l.MarketplaceID != marketplaceID {
		return nil, domain.ErrListingNotOnMarketplace
	}
	if l.Seller != seller {
		return nil, domain.ErrNotSeller
	}
	if l.HighestBid == nil {
		return nil, domain.ErrNoBidFound
	}

	bid := l.TakeBid()
	return e.settleLocked(mp, l, bid.Bidder, bid.Escrow), nil
}

// CompleteAuction finalizes a listing whose deadline has passed. Anyone may
// call it, including the bidder or a background sweeper, so finalization
// never depends on the seller showing up. With a standing bid it settles
// like AcceptHighestBid; without one it returns the asset to the seller
// with no funds movement and a nil sale.
func (e *Engine) CompleteAuction(caller, marketplaceID, listingID string) (*domain.SaleCompletedEvent, error) {
	mp, err := e.marketplaces.Get(marketplaceID)
	if err != nil {
		return nil, err
	}
	l, err := e.listings.Get(listingID)
	if err != nil {
		return nil, err
	}

	l.Mu.Lock()
	defer l.Mu.Unlock()

	if l.Closed {
		return nil, domain.ErrListingNotFound
	}
	if l.MarketplaceID != marketplaceID {
		return nil, domain.ErrListingNotOnMarketplace
	}
	if !l.Expired(e.now()) {
		return nil, domain.ErrAuctionNotOver
	}

	if l.HighestBid != nil {
		bid := l.TakeBid()
		return e.settleLocked(mp, l, bid.Bidder, bid.Escrow), nil
	}

	e.withdrawLocked(l)
	return nil, nil
}

// RemoveListing withdraws the listing: any standing bid is refunded in
// full, the asset returns to the seller, and the listing is destroyed.
// Only the seller may withdraw.
func (e *Engine) RemoveListing(seller, listingID string) error {
	l, err := e.listings.Get(listingID)
	if err != nil {
		return err
	}

	l.Mu.Lock()
	defer l.Mu.Unlock()

	if l.Closed {
		return domain.ErrListingNotFound
	}
	if l.Seller != seller {
		return domain.ErrNotSeller
	}

	e.withdrawLocked(l)
	return nil
}

// settleLocked runs the shared settlement algorithm: refund any bid still
// escrowed, pay royalty first, then commission clamped to what remains,
// then the rest to the seller; finally move custody to the buyer and
// destroy the listing. The caller holds l.Mu and has already withdrawn
// price from the buyer (or taken it from the bid escrow).
//
// royalty + commission + proceeds == price exactly: every unit leaves the
// escrow through one of the three Split/Deposit legs.
func (e *Engine) settleLocked(mp *domain.Marketplace, l *domain.Listing, buyer string, price domain.EscrowedFunds) *domain.SaleCompletedEvent {
	// Normally the caller has already consumed the bid; an instant buy over
	// a live auction reaches here with the bid still escrowed.
	if prev := l.TakeBid(); prev != nil {
		e.ledger.Deposit(prev.Bidder, prev.Escrow)
	}

	total := price.Amount()
	fees := mp.FeeSnapshot()

	// Royalty has priority over commission.
	var royaltyPaid uint64
	if info, ok := e.registry.RoyaltyOf(l.Asset); ok {
		royaltyPaid = domain.MulDiv(total, info.Numerator, info.Denominator)
		if royaltyPaid > 0 {
			part, _ := price.Split(royaltyPaid)
			e.ledger.Deposit(info.Payee, part)
		}
	}

	// Commission degrades gracefully when royalty consumed most of the
	// value: it is clamped to the post-royalty remainder rather than failing.
	commissionPaid := domain.MulDiv(total, fees.CommissionNumerator, fees.CommissionDenominator)
	if remaining := price.Amount(); commissionPaid > remaining {
		commissionPaid = remaining
	}
	if commissionPaid > 0 {
		part, _ := price.Split(commissionPaid)
		e.ledger.Deposit(fees.FeeRecipient, part)
	}

	proceeds := price.Amount()
	e.ledger.Deposit(l.Seller, price)

	// The listing holds custody for as long as it is live, so this transfer
	// cannot fail under the listing lock.
	_ = e.registry.TransferOwnership(l.Asset, l.ListingID, buyer)

	l.Closed = true
	e.listings.Delete(l.ListingID)

	sale := &domain.SaleCompletedEvent{
		MarketplaceID:  l.MarketplaceID,
		ListingID:      l.ListingID,
		Asset:          l.Asset,
		Seller:         l.Seller,
		Buyer:          buyer,
		Price:          total,
		RoyaltyPaid:    royaltyPaid,
		CommissionPaid: commissionPaid,
		SellerProceeds: proceeds,
	}
	e.publish(*sale)
	return sale
}

// withdrawLocked ends the listing without a sale: the bid slot is cleared
// with a refund, custody returns to the seller, and the listing is
// destroyed. The caller holds l.Mu.
func (e *Engine) withdrawLocked(l *domain.Listing) {
	if prev := l.TakeBid(); prev != nil {
		e.ledger.Deposit(prev.Bidder, prev.Escrow)
	}

	_ = e.registry.TransferOwnership(l.Asset, l.ListingID, l.Seller)

	l.Closed = true
	e.listings.Delete(l.ListingID)

	e.publish(domain.AuctionEndedEvent{
		MarketplaceID: l.MarketplaceID,
		ListingID:     l.ListingID,
		Asset:         l.Asset,
		Seller:        l.Seller,
	})
}
