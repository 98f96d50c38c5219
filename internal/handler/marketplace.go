package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/auctionhouse/internal/service"
)

// MarketplaceHandler handles HTTP requests for marketplace administration.
type MarketplaceHandler struct {
	marketplaceSvc *service.MarketplaceService
}

// NewMarketplaceHandler creates a new MarketplaceHandler.
func NewMarketplaceHandler(marketplaceSvc *service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{marketplaceSvc: marketplaceSvc}
}

// createMarketplaceRequest is the JSON request body for POST /marketplaces.
type createMarketplaceRequest struct {
	Owner                 string `json:"owner"`
	FeeRecipient          string `json:"fee_recipient"`
	ListingFee            uint64 `json:"listing_fee"`
	BidFee                uint64 `json:"bid_fee"`
	CommissionNumerator   uint64 `json:"commission_numerator"`
	CommissionDenominator uint64 `json:"commission_denominator"`
}

// marketplaceResponse is the JSON response for marketplace creation.
type marketplaceResponse struct {
	MarketplaceID string              `json:"marketplace_id"`
	Owner         string              `json:"owner"`
	Fees          feeScheduleResponse `json:"fees"`
	CreatedAt     string              `json:"created_at"`
}

// feeScheduleResponse is the JSON shape of a fee schedule.
type feeScheduleResponse struct {
	FeeRecipient          string `json:"fee_recipient"`
	ListingFee            uint64 `json:"listing_fee"`
	BidFee                uint64 `json:"bid_fee"`
	CommissionNumerator   uint64 `json:"commission_numerator"`
	CommissionDenominator uint64 `json:"commission_denominator"`
}

// Create handles POST /marketplaces.
func (h *MarketplaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMarketplaceRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	m, err := h.marketplaceSvc.Create(service.CreateMarketplaceRequest{
		Owner:                 req.Owner,
		FeeRecipient:          req.FeeRecipient,
		ListingFee:            req.ListingFee,
		BidFee:                req.BidFee,
		CommissionNumerator:   req.CommissionNumerator,
		CommissionDenominator: req.CommissionDenominator,
	})
	if err != nil {
		mapDomainError(w, err)
		return
	}

	fees := m.FeeSnapshot()
	WriteJSON(w, http.StatusCreated, marketplaceResponse{
		MarketplaceID: m.MarketplaceID,
		Owner:         m.Owner,
		Fees: feeScheduleResponse{
			FeeRecipient:          fees.FeeRecipient,
			ListingFee:            fees.ListingFee,
			BidFee:                fees.BidFee,
			CommissionNumerator:   fees.CommissionNumerator,
			CommissionDenominator: fees.CommissionDenominator,
		},
		CreatedAt: m.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"),
	})
}

// GetFees handles GET /marketplaces/{marketplace_id}/fees.
func (h *MarketplaceHandler) GetFees(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	fees, err := h.marketplaceSvc.GetFeeSchedule(marketplaceID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, feeScheduleResponse{
		FeeRecipient:          fees.FeeRecipient,
		ListingFee:            fees.ListingFee,
		BidFee:                fees.BidFee,
		CommissionNumerator:   fees.CommissionNumerator,
		CommissionDenominator: fees.CommissionDenominator,
	})
}

// setRecipientRequest is the JSON request body for the fee recipient setter.
type setRecipientRequest struct {
	Caller       string `json:"caller"`
	FeeRecipient string `json:"fee_recipient"`
}

// SetFeeRecipient handles PUT /marketplaces/{marketplace_id}/fees/recipient.
func (h *MarketplaceHandler) SetFeeRecipient(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	var req setRecipientRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.marketplaceSvc.SetFeeRecipient(req.Caller, marketplaceID, req.FeeRecipient); err != nil {
		mapDomainError(w, err)
		return
	}
	h.GetFees(w, r)
}

// setFeeRequest is the JSON request body for the flat fee setters.
type setFeeRequest struct {
	Caller string `json:"caller"`
	Fee    uint64 `json:"fee"`
}

// SetListingFee handles PUT /marketplaces/{marketplace_id}/fees/listing-fee.
func (h *MarketplaceHandler) SetListingFee(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	var req setFeeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.marketplaceSvc.SetListingFee(req.Caller, marketplaceID, req.Fee); err != nil {
		mapDomainError(w, err)
		return
	}
	h.GetFees(w, r)
}

// SetBidFee handles PUT /marketplaces/{marketplace_id}/fees/bid-fee.
func (h *MarketplaceHandler) SetBidFee(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	var req setFeeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.marketplaceSvc.SetBidFee(req.Caller, marketplaceID, req.Fee); err != nil {
		mapDomainError(w, err)
		return
	}
	h.GetFees(w, r)
}

// setCommissionRequest is the JSON request body for the commission setter.
type setCommissionRequest struct {
	Caller      string `json:"caller"`
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// SetCommission handles PUT /marketplaces/{marketplace_id}/fees/commission.
func (h *MarketplaceHandler) SetCommission(w http.ResponseWriter, r *http.Request) {
	marketplaceID := chi.URLParam(r, "marketplace_id")

	var req setCommissionRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.marketplaceSvc.SetCommission(req.Caller, marketplaceID, req.Numerator, req.Denominator); err != nil {
		mapDomainError(w, err)
		return
	}
	h.GetFees(w, r)
}
