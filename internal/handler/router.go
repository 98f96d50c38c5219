package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/auctionhouse/internal/service"
)

// NewRouter creates a chi router with all routes registered, request logging,
// and Content-Type validation middleware.
func NewRouter(
	marketplaceSvc *service.MarketplaceService,
	listingSvc *service.ListingService,
	accountSvc *service.AccountService,
	webhookSvc *service.WebhookService,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	// Create handlers.
	marketplaceH := NewMarketplaceHandler(marketplaceSvc)
	listingH := NewListingHandler(listingSvc)
	accountH := NewAccountHandler(accountSvc)
	webhookH := NewWebhookHandler(webhookSvc)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Marketplace routes.
	r.Post("/marketplaces", marketplaceH.Create)
	r.Get("/marketplaces/{marketplace_id}/fees", marketplaceH.GetFees)
	r.Put("/marketplaces/{marketplace_id}/fees/recipient", marketplaceH.SetFeeRecipient)
	r.Put("/marketplaces/{marketplace_id}/fees/listing-fee", marketplaceH.SetListingFee)
	r.Put("/marketplaces/{marketplace_id}/fees/bid-fee", marketplaceH.SetBidFee)
	r.Put("/marketplaces/{marketplace_id}/fees/commission", marketplaceH.SetCommission)

	// Listing routes.
	r.Post("/marketplaces/{marketplace_id}/listings", listingH.List)
	r.Get("/marketplaces/{marketplace_id}/listings", listingH.ListByMarketplace)
	r.Get("/listings/{listing_id}", listingH.Get)
	r.Post("/marketplaces/{marketplace_id}/listings/{listing_id}/bids", listingH.PlaceBid)
	r.Post("/marketplaces/{marketplace_id}/listings/{listing_id}/buy", listingH.Buy)
	r.Post("/marketplaces/{marketplace_id}/buy", listingH.BuyMultiple)
	r.Post("/marketplaces/{marketplace_id}/listings/{listing_id}/accept", listingH.AcceptHighestBid)
	r.Post("/marketplaces/{marketplace_id}/listings/{listing_id}/complete", listingH.CompleteAuction)
	r.Post("/listings/{listing_id}/withdraw", listingH.Withdraw)

	// Account and asset routes.
	r.Post("/accounts", accountH.Create)
	r.Get("/accounts/{account_id}/balance", accountH.GetBalance)
	r.Post("/assets", accountH.RegisterAsset)
	r.Get("/assets/{asset_id}/owner", accountH.GetAssetOwner)

	// Webhook routes.
	r.Post("/webhooks", webhookH.Upsert)
	r.Get("/webhooks", webhookH.List)
	r.Delete("/webhooks/{webhook_id}", webhookH.Delete)

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
