package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/service"
)

// AccountHandler handles HTTP requests for account and asset seeding
// endpoints.
type AccountHandler struct {
	accountSvc *service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc *service.AccountService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// createAccountRequest is the JSON request body for POST /accounts.
type createAccountRequest struct {
	AccountID      string `json:"account_id"`
	InitialBalance uint64 `json:"initial_balance"`
}

// balanceResponse is the JSON response for the balance query.
type balanceResponse struct {
	AccountID string `json:"account_id"`
	Balance   uint64 `json:"balance"`
}

// Create handles POST /accounts.
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.accountSvc.CreateAccount(service.CreateAccountRequest{
		AccountID:      req.AccountID,
		InitialBalance: req.InitialBalance,
	}); err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, balanceResponse{
		AccountID: req.AccountID,
		Balance:   req.InitialBalance,
	})
}

// GetBalance handles GET /accounts/{account_id}/balance.
func (h *AccountHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "account_id")

	view, err := h.accountSvc.GetBalance(accountID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, balanceResponse{
		AccountID: view.AccountID,
		Balance:   view.Balance,
	})
}

// royaltyRequest is the optional royalty block in asset registration.
type royaltyRequest struct {
	Payee       string `json:"payee"`
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// registerAssetRequest is the JSON request body for POST /assets.
type registerAssetRequest struct {
	AssetID string          `json:"asset_id"`
	Owner   string          `json:"owner"`
	Royalty *royaltyRequest `json:"royalty"`
}

// assetResponse is the JSON response for asset endpoints.
type assetResponse struct {
	AssetID string `json:"asset_id"`
	Owner   string `json:"owner"`
}

// RegisterAsset handles POST /assets.
func (h *AccountHandler) RegisterAsset(w http.ResponseWriter, r *http.Request) {
	var req registerAssetRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var royalty *domain.RoyaltyInfo
	if req.Royalty != nil {
		royalty = &domain.RoyaltyInfo{
			Payee:       req.Royalty.Payee,
			Numerator:   req.Royalty.Numerator,
			Denominator: req.Royalty.Denominator,
		}
	}

	if err := h.accountSvc.RegisterAsset(service.RegisterAssetRequest{
		AssetID: req.AssetID,
		Owner:   req.Owner,
		Royalty: royalty,
	}); err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, assetResponse{
		AssetID: req.AssetID,
		Owner:   req.Owner,
	})
}

// GetAssetOwner handles GET /assets/{asset_id}/owner.
func (h *AccountHandler) GetAssetOwner(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "asset_id")

	owner, err := h.accountSvc.GetAssetOwner(assetID)
	if err != nil {
		mapDomainError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, assetResponse{
		AssetID: assetID,
		Owner:   owner,
	})
}
