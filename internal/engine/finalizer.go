package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/store"
)

// FinalizerCaller is the caller identity the background finalizer presents
// to CompleteAuction. Completion is open to anyone, so this is purely
// informational.
const FinalizerCaller = "system:finalizer"

// Finalizer periodically completes listings whose deadline has passed. It
// is an ordinary caller of the public CompleteAuction operation: the engine
// itself has no timers, and expiry remains a wall-clock comparison against
// the stored deadline. A marketplace stays correct without the finalizer,
// since any interested party can complete an expired auction; it just
// finalizes faster with one.
type Finalizer struct {
	interval time.Duration
	engine   *Engine
	listings *store.ListingStore
	logger   *slog.Logger
}

// NewFinalizer creates a Finalizer ticking at the given interval.
func NewFinalizer(interval time.Duration, engine *Engine, listings *store.ListingStore, logger *slog.Logger) *Finalizer {
	return &Finalizer{
		interval: interval,
		engine:   engine,
		listings: listings,
		logger:   logger,
	}
}

// Start launches a background goroutine that ticks at the configured
// interval and completes expired listings. It stops when ctx is cancelled.
func (f *Finalizer) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				f.Tick(t)
			}
		}
	}()
}

// Tick completes every listing expired as of now. Exported so tests can
// drive the finalizer without the ticker.
func (f *Finalizer) Tick(now time.Time) {
	for _, l := range f.listings.ExpiredBefore(now) {
		sale, err := f.engine.CompleteAuction(FinalizerCaller, l.MarketplaceID, l.ListingID)
		switch {
		case err == nil && sale != nil:
			f.logger.Info("auction finalized",
				slog.String("listing_id", l.ListingID),
				slog.String("buyer", sale.Buyer),
				slog.Uint64("price", sale.Price),
			)
		case err == nil:
			f.logger.Info("auction ended without sale",
				slog.String("listing_id", l.ListingID),
			)
		case errors.Is(err, domain.ErrListingNotFound):
			// Settled or withdrawn by another caller between the scan and
			// the lock. Nothing to do.
		default:
			f.logger.Error("auction finalization failed",
				slog.String("listing_id", l.ListingID),
				slog.String("error", err.Error()),
			)
		}
	}
}
