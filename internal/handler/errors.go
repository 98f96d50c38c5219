package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// mapDomainError maps domain errors to HTTP responses. Every sentinel the
// engine or services return has exactly one status code here.
func mapDomainError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrMarketplaceNotFound),
		errors.Is(err, domain.ErrListingNotFound),
		errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrAssetNotFound),
		errors.Is(err, domain.ErrWebhookNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), err.Error())
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotSeller):
		WriteError(w, http.StatusForbidden, err.Error(), err.Error())
	case errors.Is(err, domain.ErrInvalidFeeConfig),
		errors.Is(err, domain.ErrDurationTooShort):
		WriteError(w, http.StatusBadRequest, err.Error(), err.Error())
	case errors.Is(err, domain.ErrListingExpired),
		errors.Is(err, domain.ErrAuctionNotOver),
		errors.Is(err, domain.ErrBidTooLow),
		errors.Is(err, domain.ErrNoBidFound),
		errors.Is(err, domain.ErrListingNotOnMarketplace),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrAccountAlreadyExists),
		errors.Is(err, domain.ErrAssetAlreadyExists):
		WriteError(w, http.StatusConflict, err.Error(), err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
