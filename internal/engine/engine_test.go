package engine

import (
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/ledger"
	"github.com/efreitasn/auctionhouse/internal/registry"
	"github.com/efreitasn/auctionhouse/internal/store"
)

// testEngine bundles an engine with its collaborators and a controllable
// clock.
type testEngine struct {
	engine   *Engine
	ledger   *ledger.Memory
	registry *registry.Memory
	listings *store.ListingStore
	clock    time.Time
}

func newTestEngine(fees domain.FeeSchedule) (*testEngine, *domain.Marketplace) {
	marketplaces := store.NewMarketplaceStore()
	listings := store.NewListingStore()
	l := ledger.NewMemory()
	r := registry.NewMemory()

	mp := &domain.Marketplace{
		MarketplaceID: "mp1",
		Owner:         "owner",
		Fees:          fees,
		CreatedAt:     time.Now(),
	}
	marketplaces.Create(mp)

	te := &testEngine{
		engine:   NewEngine(marketplaces, listings, l, r, nil),
		ledger:   l,
		registry: r,
		listings: listings,
		clock:    time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	te.engine.now = func() time.Time { return te.clock }
	return te, mp
}

func (te *testEngine) advance(d time.Duration) {
	te.clock = te.clock.Add(d)
}

// seed creates an account with a balance.
func (te *testEngine) seed(account string, balance uint64) {
	_ = te.ledger.CreateAccount(account, balance)
}

// mint registers an asset owned by owner, optionally with a royalty.
func (te *testEngine) mint(asset, owner string, royalty *domain.RoyaltyInfo) {
	_ = te.registry.Register(asset, owner, royalty)
}

// list creates a listing with a one hour duration.
func (te *testEngine) list(t rapid.TB, seller, asset string, minBid, instantPrice uint64) *domain.Listing {
	t.Helper()
	l, err := te.engine.List(seller, "mp1", asset, minBid, instantPrice, time.Hour)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	return l
}

var noFees = domain.FeeSchedule{
	FeeRecipient:          "treasury",
	CommissionDenominator: 1,
}

func TestList_EscrowsAsset(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.mint("nft", "alice", nil)

	l := te.list(t, "alice", "nft", 10, 100)

	if !te.registry.IsOwner("nft", l.ListingID) {
		t.Error("expected the listing to hold custody of the asset")
	}
	if te.listings.Count() != 1 {
		t.Errorf("expected 1 live listing, got %d", te.listings.Count())
	}
	if got := l.ExpirationTime.Sub(l.StartTime); got != time.Hour {
		t.Errorf("expected 1h duration, got %v", got)
	}
}

func TestList_ChargesListingFee(t *testing.T) {
	fees := noFees
	fees.ListingFee = 25
	te, _ := newTestEngine(fees)
	te.seed("alice", 100)
	te.mint("nft", "alice", nil)

	te.list(t, "alice", "nft", 10, 100)

	if got := te.ledger.BalanceOf("alice"); got != 75 {
		t.Errorf("expected alice 75 after listing fee, got %d", got)
	}
	if got := te.ledger.BalanceOf("treasury"); got != 25 {
		t.Errorf("expected treasury 25, got %d", got)
	}
}

func TestList_FeeFailureReturnsAsset(t *testing.T) {
	fees := noFees
	fees.ListingFee = 25
	te, _ := newTestEngine(fees)
	te.seed("alice", 10) // not enough for the fee
	te.mint("nft", "alice", nil)

	_, err := te.engine.List("alice", "mp1", "nft", 10, 100, time.Hour)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if !te.registry.IsOwner("nft", "alice") {
		t.Error("expected custody returned to alice after fee failure")
	}
	if te.listings.Count() != 0 {
		t.Error("expected no listing created")
	}
}

func TestList_DurationTooShort(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.mint("nft", "alice", nil)

	// Exactly the minimum is rejected; one second more is accepted.
	_, err := te.engine.List("alice", "mp1", "nft", 10, 100, domain.MinListingDuration)
	if !errors.Is(err, domain.ErrDurationTooShort) {
		t.Errorf("expected ErrDurationTooShort, got %v", err)
	}
	if _, err := te.engine.List("alice", "mp1", "nft", 10, 100, domain.MinListingDuration+time.Second); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestList_NotOwner(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("bob", 0)
	te.mint("nft", "alice", nil)

	_, err := te.engine.List("bob", "mp1", "nft", 10, 100, time.Hour)
	if !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
}

func TestList_UnknownMarketplace(t *testing.T) {
	te, _ := newTestEngine(noFees)

	_, err := te.engine.List("alice", "nope", "nft", 10, 100, time.Hour)
	if !errors.Is(err, domain.ErrMarketplaceNotFound) {
		t.Errorf("expected ErrMarketplaceNotFound, got %v", err)
	}
}

func TestPlaceBid_FirstBidMustReachMinBid(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 9)
	if !errors.Is(err, domain.ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow, got %v", err)
	}

	// Exactly MinBid is accepted for the first bid.
	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := te.ledger.BalanceOf("bob"); got != 90 {
		t.Errorf("expected bob 90 after escrow, got %d", got)
	}
}

func TestPlaceBid_ReplacementMustStrictlyExceed(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.seed("carol", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A tie is rejected.
	if err := te.engine.PlaceBid("carol", "mp1", l.ListingID, 20); !errors.Is(err, domain.ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow on tie, got %v", err)
	}

	// A strictly higher bid replaces and refunds the old one in full.
	if err := te.engine.PlaceBid("carol", "mp1", l.ListingID, 21); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := te.ledger.BalanceOf("bob"); got != 100 {
		t.Errorf("expected bob refunded to 100, got %d", got)
	}
	if got := te.ledger.BalanceOf("carol"); got != 79 {
		t.Errorf("expected carol 79 after escrow, got %d", got)
	}
	if l.HighestBid == nil || l.HighestBid.Bidder != "carol" {
		t.Error("expected carol to hold the standing bid")
	}
}

func TestPlaceBid_FeeChargedEvenWhenBidRejected(t *testing.T) {
	fees := noFees
	fees.BidFee = 5
	te, _ := newTestEngine(fees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 50, 100)

	err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 10)
	if !errors.Is(err, domain.ErrBidTooLow) {
		t.Fatalf("expected ErrBidTooLow, got %v", err)
	}
	// The fee is gone regardless of the rejection.
	if got := te.ledger.BalanceOf("bob"); got != 95 {
		t.Errorf("expected bob 95 after rejected bid, got %d", got)
	}
	if got := te.ledger.BalanceOf("treasury"); got != 5 {
		t.Errorf("expected treasury 5, got %d", got)
	}
}

func TestPlaceBid_InsufficientFundsForPrincipal(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 10)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 11)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := te.ledger.BalanceOf("bob"); got != 10 {
		t.Errorf("failed bid moved principal: bob has %d", got)
	}
	if l.HighestBid != nil {
		t.Error("expected no standing bid")
	}
}

func TestPlaceBid_ExpiredListing(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	te.advance(time.Hour + time.Second)
	err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 50)
	if !errors.Is(err, domain.ErrListingExpired) {
		t.Errorf("expected ErrListingExpired, got %v", err)
	}
}

func TestPlaceBid_WrongMarketplace(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	mp2 := &domain.Marketplace{MarketplaceID: "mp2", Owner: "owner", Fees: noFees}
	te.engine.marketplaces.Create(mp2)

	err := te.engine.PlaceBid("bob", "mp2", l.ListingID, 50)
	if !errors.Is(err, domain.ErrListingNotOnMarketplace) {
		t.Errorf("expected ErrListingNotOnMarketplace, got %v", err)
	}
}

func TestBuy_SettlesAtInstantPrice(t *testing.T) {
	fees := domain.FeeSchedule{
		FeeRecipient:          "treasury",
		CommissionNumerator:   5,
		CommissionDenominator: 100,
	}
	te, _ := newTestEngine(fees)
	te.seed("alice", 0)
	te.seed("bob", 200)
	te.mint("nft", "alice", &domain.RoyaltyInfo{Payee: "creator", Numerator: 10, Denominator: 100})
	l := te.list(t, "alice", "nft", 10, 100)

	sale, err := te.engine.Buy("bob", "mp1", l.ListingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sale.Price != 100 {
		t.Errorf("expected price 100, got %d", sale.Price)
	}
	if sale.RoyaltyPaid != 10 {
		t.Errorf("expected royalty 10, got %d", sale.RoyaltyPaid)
	}
	if sale.CommissionPaid != 5 {
		t.Errorf("expected commission 5, got %d", sale.CommissionPaid)
	}
	if sale.SellerProceeds != 85 {
		t.Errorf("expected proceeds 85, got %d", sale.SellerProceeds)
	}

	if got := te.ledger.BalanceOf("bob"); got != 100 {
		t.Errorf("expected bob 100, got %d", got)
	}
	if got := te.ledger.BalanceOf("creator"); got != 10 {
		t.Errorf("expected creator 10, got %d", got)
	}
	if got := te.ledger.BalanceOf("treasury"); got != 5 {
		t.Errorf("expected treasury 5, got %d", got)
	}
	if got := te.ledger.BalanceOf("alice"); got != 85 {
		t.Errorf("expected alice 85, got %d", got)
	}

	if !te.registry.IsOwner("nft", "bob") {
		t.Error("expected bob to own the asset")
	}
	if te.listings.Count() != 0 {
		t.Error("expected the listing to be destroyed")
	}
}

func TestBuy_RefundsStandingBid(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.seed("carol", 200)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := te.engine.Buy("carol", "mp1", l.ListingID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := te.ledger.BalanceOf("bob"); got != 100 {
		t.Errorf("expected bob fully refunded, got %d", got)
	}
	if !te.registry.IsOwner("nft", "carol") {
		t.Error("expected carol to own the asset")
	}
}

func TestBuy_InsufficientFunds(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 50)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	_, err := te.engine.Buy("bob", "mp1", l.ListingID)
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if te.listings.Count() != 1 {
		t.Error("failed buy destroyed the listing")
	}
}

func TestBuy_Expired(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 200)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	te.advance(2 * time.Hour)
	_, err := te.engine.Buy("bob", "mp1", l.ListingID)
	if !errors.Is(err, domain.ErrListingExpired) {
		t.Errorf("expected ErrListingExpired, got %v", err)
	}
}

func TestBuyMultiple_FirstErrorAbortsRemainder(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 150) // enough for one listing, not two
	te.mint("nft1", "alice", nil)
	te.mint("nft2", "alice", nil)
	te.mint("nft3", "alice", nil)
	l1 := te.list(t, "alice", "nft1", 10, 100)
	l2 := te.list(t, "alice", "nft2", 10, 100)
	l3 := te.list(t, "alice", "nft3", 10, 100)

	sales, err := te.engine.BuyMultiple("bob", "mp1", []string{l1.ListingID, l2.ListingID, l3.ListingID})
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected 1 completed sale, got %d", len(sales))
	}

	// The first sale stands; the second failed; the third was never tried.
	if !te.registry.IsOwner("nft1", "bob") {
		t.Error("expected bob to own nft1")
	}
	if te.listings.Count() != 2 {
		t.Errorf("expected 2 listings remaining, got %d", te.listings.Count())
	}
	if got := te.ledger.BalanceOf("bob"); got != 50 {
		t.Errorf("expected bob 50, got %d", got)
	}
}

func TestAcceptHighestBid(t *testing.T) {
	fees := domain.FeeSchedule{
		FeeRecipient:          "treasury",
		CommissionNumerator:   5,
		CommissionDenominator: 100,
	}
	te, _ := newTestEngine(fees)
	te.seed("alice", 0)
	te.seed("bobA", 100)
	te.seed("bobB", 100)
	te.mint("nft", "alice", &domain.RoyaltyInfo{Payee: "creator", Numerator: 10, Denominator: 100})
	l := te.list(t, "alice", "nft", 5, 1000)

	if err := te.engine.PlaceBid("bobA", "mp1", l.ListingID, 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := te.engine.PlaceBid("bobB", "mp1", l.ListingID, 10); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// bobA was outbid and refunded in full.
	if got := te.ledger.BalanceOf("bobA"); got != 100 {
		t.Errorf("expected bobA refunded, got %d", got)
	}

	sale, err := te.engine.AcceptHighestBid("alice", "mp1", l.ListingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 10 settles as royalty 1, commission 0 (floor of 0.5), proceeds 9.
	if sale.Price != 10 || sale.RoyaltyPaid != 1 || sale.CommissionPaid != 0 || sale.SellerProceeds != 9 {
		t.Errorf("unexpected settlement: %+v", sale)
	}
	if !te.registry.IsOwner("nft", "bobB") {
		t.Error("expected bobB to own the asset")
	}
	if got := te.ledger.BalanceOf("alice"); got != 9 {
		t.Errorf("expected alice 9, got %d", got)
	}
	if got := te.ledger.BalanceOf("creator"); got != 1 {
		t.Errorf("expected creator 1, got %d", got)
	}
}

func TestAcceptHighestBid_NotSeller(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)
	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := te.engine.AcceptHighestBid("bob", "mp1", l.ListingID)
	if !errors.Is(err, domain.ErrNotSeller) {
		t.Errorf("expected ErrNotSeller, got %v", err)
	}
}

func TestAcceptHighestBid_NoBid(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	_, err := te.engine.AcceptHighestBid("alice", "mp1", l.ListingID)
	if !errors.Is(err, domain.ErrNoBidFound) {
		t.Errorf("expected ErrNoBidFound, got %v", err)
	}
}

func TestCompleteAuction_BeforeDeadline(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	_, err := te.engine.CompleteAuction("anyone", "mp1", l.ListingID)
	if !errors.Is(err, domain.ErrAuctionNotOver) {
		t.Errorf("expected ErrAuctionNotOver, got %v", err)
	}

	// Exactly at the deadline is still not over.
	te.advance(time.Hour)
	_, err = te.engine.CompleteAuction("anyone", "mp1", l.ListingID)
	if !errors.Is(err, domain.ErrAuctionNotOver) {
		t.Errorf("expected ErrAuctionNotOver at the deadline, got %v", err)
	}
}

func TestCompleteAuction_WithBid_AnyoneCanCall(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)
	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 60); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	te.advance(time.Hour + time.Second)
	sale, err := te.engine.CompleteAuction("random-passerby", "mp1", l.ListingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale == nil || sale.Buyer != "bob" || sale.Price != 60 {
		t.Errorf("unexpected sale: %+v", sale)
	}
	if !te.registry.IsOwner("nft", "bob") {
		t.Error("expected bob to own the asset")
	}
	if got := te.ledger.BalanceOf("alice"); got != 60 {
		t.Errorf("expected alice 60, got %d", got)
	}
}

func TestCompleteAuction_NoBid_ReturnsAsset(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	te.advance(time.Hour + time.Second)
	sale, err := te.engine.CompleteAuction("anyone", "mp1", l.ListingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale != nil {
		t.Errorf("expected nil sale, got %+v", sale)
	}
	if !te.registry.IsOwner("nft", "alice") {
		t.Error("expected custody returned to alice")
	}
	if te.listings.Count() != 0 {
		t.Error("expected the listing to be destroyed")
	}
}

func TestRemoveListing(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)
	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := te.engine.RemoveListing("alice", l.ListingID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := te.ledger.BalanceOf("bob"); got != 100 {
		t.Errorf("expected bob fully refunded, got %d", got)
	}
	if !te.registry.IsOwner("nft", "alice") {
		t.Error("expected custody returned to alice")
	}
	if te.listings.Count() != 0 {
		t.Error("expected the listing to be destroyed")
	}
}

func TestRemoveListing_NotSeller(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	if err := te.engine.RemoveListing("bob", l.ListingID); !errors.Is(err, domain.ErrNotSeller) {
		t.Errorf("expected ErrNotSeller, got %v", err)
	}
	if te.listings.Count() != 1 {
		t.Error("failed removal destroyed the listing")
	}
}

func TestSettlement_CommissionClampedToRemainder(t *testing.T) {
	// Royalty 100% leaves nothing; the commission clamps to zero instead of
	// failing the settlement.
	fees := domain.FeeSchedule{
		FeeRecipient:          "treasury",
		CommissionNumerator:   50,
		CommissionDenominator: 100,
	}
	te, _ := newTestEngine(fees)
	te.seed("alice", 0)
	te.seed("bob", 100)
	te.mint("nft", "alice", &domain.RoyaltyInfo{Payee: "creator", Numerator: 1, Denominator: 1})
	l := te.list(t, "alice", "nft", 10, 100)

	sale, err := te.engine.Buy("bob", "mp1", l.ListingID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sale.RoyaltyPaid != 100 || sale.CommissionPaid != 0 || sale.SellerProceeds != 0 {
		t.Errorf("unexpected settlement: %+v", sale)
	}
	if got := te.ledger.BalanceOf("creator"); got != 100 {
		t.Errorf("expected creator 100, got %d", got)
	}
}

func TestListingID_NotReusable(t *testing.T) {
	te, _ := newTestEngine(noFees)
	te.seed("alice", 0)
	te.seed("bob", 200)
	te.mint("nft", "alice", nil)
	l := te.list(t, "alice", "nft", 10, 100)

	if _, err := te.engine.Buy("bob", "mp1", l.ListingID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Every operation on the destroyed listing fails with not-found.
	if err := te.engine.PlaceBid("bob", "mp1", l.ListingID, 50); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound on bid, got %v", err)
	}
	if _, err := te.engine.Buy("bob", "mp1", l.ListingID); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound on buy, got %v", err)
	}
	if err := te.engine.RemoveListing("alice", l.ListingID); !errors.Is(err, domain.ErrListingNotFound) {
		t.Errorf("expected ErrListingNotFound on remove, got %v", err)
	}
}
