package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/service"
)

// ListingHandler handles HTTP requests for listing and auction endpoints.
type ListingHandler struct {
	listingSvc *service.ListingService
}

// NewListingHandler creates a new ListingHandler.
func NewListingHandler(listingSvc *service.ListingService) *ListingHandler {
	return &ListingHandler{listingSvc: listingSvc}
}

// listRequest is the JSON request body for listing creation.
type listRequest struct {
	Seller          string `json:"seller"`
	Asset           string `json:"asset"`
	MinBid          uint64 `json:"min_bid"`
	InstantPrice    uint64 `json:"instant_price"`
	DurationSeconds int64  `json:"duration_seconds"`
}

// bidResponse is the standing bid inside a listing response.
type bidResponse struct {
	Bidder string `json:"bidder"`
	Amount uint64 `json:"amount"`
}

// listingResponse is the JSON shape of a listing snapshot.
type listingResponse struct {
	ListingID      string       `json:"listing_id"`
	MarketplaceID  string       `json:"marketplace_id"`
	Asset          string       `json:"asset"`
	Seller         string       `json:"seller"`
	MinBid         uint64       `json:"min_bid"`
	InstantPrice   uint64       `json:"instant_price"`
	StartTime      string       `json:"start_time"`
	ExpirationTime string       `json:"expiration_time"`
	HighestBid     *bidResponse `json:"highest_bid"`
}

// saleResponse is the JSON shape of a completed sale.
type saleResponse struct {
	ListingID      string `json:"listing_id"`
	MarketplaceID  string `json:"marketplace_id"`
	Asset          string `json:"asset"`
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	Price          uint64 `json:"price"`
	RoyaltyPaid    uint64 `json:"royalty_paid"`
	CommissionPaid uint64 `json:"commission_paid"`
	SellerProceeds uint64 `json:"seller_proceeds"`
}

func buildListingResponse(v *service.ListingView) listingResponse {
	resp := listingResponse{
		ListingID:      v.ListingID,
		MarketplaceID:  v.MarketplaceID,
		Asset:          v.Asset,
		Seller:         v.Seller,
		MinBid:         v.MinBid,
		InstantPrice:   v.InstantPrice,
		StartTime:      v.StartTime.UTC().Format("2006-01-02T15:04:05Z"),
		ExpirationTime: v.ExpirationTime.UTC().Format("2006-01-02T15:04:05Z"),
	}
	if v.HighestBid != nil {
		resp.HighestBid = &bidResponse{
			Bidder: v.HighestBid.Bidder,
			Amount: v.HighestBid.Amount,
		}
	}
	return resp
}

func buildSaleResponse(s *domain.SaleCompletedEvent) saleResponse {
	return saleResponse{
		ListingID:      s.ListingID,
		MarketplaceID:  s.MarketplaceID,
		Asset:          s.Asset,
		Seller:         s.Seller,
		Buyer:          s.Buyer,
		Price:          s.Price,
		RoyaltyPaid:    s.RoyaltyPaid,
		CommissionPaid: s.CommissionPaid,
		SellerProceeds: s.SellerProceeds,
	}
}

// List handles POST /marketplaces/{marketplace_id}/listings.
func (h *ListingHandler) List(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	var req listRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	view, err := h.listingSvc.List(service.ListRequest{
		Seller:          req.Seller,
		MarketplaceID:   marketplaceID,
		Asset:           req.Asset,
		MinBid:          req.MinBid,
		InstantPrice:    req.InstantPrice,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildListingResponse(view))
}

// Get handles GET /listings/{listing_id}.
func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listing_id")

	view, err := h.listingSvc.GetListing(listingID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildListingResponse(view))
}

// ListByMarketplace handles GET /marketplaces/{marketplace_id}/listings.
func (h *ListingHandler) ListByMarketplace(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	views := h.listingSvc.ListByMarketplace(marketplaceID)
	listings := make([]listingResponse, len(views))
	for i, v := range views {
		listings[i] = buildListingResponse(v)
	}

	WriteJSON(w, http.StatusOK, map[string]any{"listings": listings})
}

// placeBidRequest is the JSON request body for placing a bid.
type placeBidRequest struct {
	Bidder string `json:"bidder"`
	Amount uint64 `json:"amount"`
}

// PlaceBid handles POST /marketplaces/{marketplace_id}/listings/{listing_id}/bids.
func (h *ListingHandler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")
	listingID := chi.URLParam(r, "listing_id")

	var req placeBidRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	err := h.listingSvc.PlaceBid(service.BidRequest{
		Bidder:        req.Bidder,
		MarketplaceID: marketplaceID,
		ListingID:     listingID,
		Amount:        req.Amount,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, bidResponse{
		Bidder: req.Bidder,
		Amount: req.Amount,
	})
}

// buyRequest is the JSON request body for an instant buy.
type buyRequest struct {
	Buyer string `json:"buyer"`
}

// Buy handles POST /marketplaces/{marketplace_id}/listings/{listing_id}/buy.
func (h *ListingHandler) Buy(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")
	listingID := chi.URLParam(r, "listing_id")

	var req buyRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sale, err := h.listingSvc.Buy(req.Buyer, marketplaceID, listingID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildSaleResponse(sale))
}

// buyMultipleRequest is the JSON request body for a batch instant buy.
type buyMultipleRequest struct {
	Buyer      string   `json:"buyer"`
	ListingIDs []string `json:"listing_ids"`
}

// BuyMultiple handles POST /marketplaces/{marketplace_id}/buy. Settlement
// is best-effort: the response carries the sales completed before the first
// failure, alongside the failure itself when one occurred.
func (h *ListingHandler) BuyMultiple(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	var req buyMultipleRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sales, err := h.listingSvc.BuyMultiple(req.Buyer, marketplaceID, req.ListingIDs)
	if err != nil && len(sales) == 0 {
		mapDomainError(w, err)
		return
	}

	completed := make([]saleResponse, len(sales))
	for i, s := range sales {
		completed[i] = buildSaleResponse(s)
	}

	resp := map[string]any{"sales": completed}
	status := http.StatusOK
	if err != nil {
		// Partial success: report what settled and what stopped the batch.
		resp["error"] = err.Error()
		status = http.StatusMultiStatus
	}
	WriteJSON(w, status, resp)
}

// sellerRequest is the JSON request body for seller-authorized operations.
type sellerRequest struct {
	Seller string `json:"seller"`
}

// AcceptHighestBid handles POST /marketplaces/{marketplace_id}/listings/{listing_id}/accept.
func (h *ListingHandler) AcceptHighestBid(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")
	listingID := chi.URLParam(r, "listing_id")

	var req sellerRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sale, err := h.listingSvc.AcceptHighestBid(req.Seller, marketplaceID, listingID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildSaleResponse(sale))
}

// completeRequest is the JSON request body for auction completion.
type completeRequest struct {
	Caller string `json:"caller"`
}

// CompleteAuction handles POST /marketplaces/{marketplace_id}/listings/{listing_id}/complete.
func (h *ListingHandler) CompleteAuction(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")
	listingID := chi.URLParam(r, "listing_id")

	var req completeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	sale, err := h.listingSvc.CompleteAuction(req.Caller, marketplaceID, listingID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	if sale == nil {
		// Expired with no bid: the asset went back to the seller.
		WriteJSON(w, http.StatusOK, map[string]any{"sale": nil})
		return
	}
	WriteJSON(w, http.StatusOK, buildSaleResponse(sale))
}

// Withdraw handles POST /listings/{listing_id}/withdraw.
func (h *ListingHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listing_id")

	var req sellerRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.listingSvc.RemoveListing(req.Seller, listingID); err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "withdrawn"})
}
