package domain

import (
	"testing"
	"time"
)

func TestExpired_Boundary(t *testing.T) {
	deadline := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := &Listing{ExpirationTime: deadline}

	if l.Expired(deadline.Add(-time.Second)) {
		t.Error("listing should not be expired before the deadline")
	}
	// The deadline instant itself is still live.
	if l.Expired(deadline) {
		t.Error("listing should not be expired exactly at the deadline")
	}
	if !l.Expired(deadline.Add(time.Nanosecond)) {
		t.Error("listing should be expired past the deadline")
	}
}

func TestTakeBid(t *testing.T) {
	l := &Listing{
		HighestBid: &Bid{Bidder: "alice", Escrow: NewEscrowedFunds(50)},
	}

	bid := l.TakeBid()
	if bid == nil {
		t.Fatal("expected a bid")
	}
	if bid.Bidder != "alice" || bid.Escrow.Amount() != 50 {
		t.Errorf("unexpected bid: %+v", bid)
	}
	if l.HighestBid != nil {
		t.Error("expected bid slot to be empty after TakeBid")
	}
	if l.TakeBid() != nil {
		t.Error("expected second TakeBid to return nil")
	}
}
