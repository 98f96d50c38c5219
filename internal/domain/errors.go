package domain

import "errors"

// Sentinel errors for domain-level error handling.
// The handler layer maps these to HTTP status codes.
var (
	ErrMarketplaceNotFound     = errors.New("marketplace_not_found")
	ErrListingNotFound         = errors.New("listing_not_found")
	ErrListingNotOnMarketplace = errors.New("listing_not_on_marketplace")
	ErrUnauthorized            = errors.New("unauthorized")
	ErrNotOwner                = errors.New("not_owner")
	ErrNotSeller               = errors.New("not_seller")
	ErrInvalidFeeConfig        = errors.New("invalid_fee_config")
	ErrDurationTooShort        = errors.New("duration_too_short")
	ErrListingExpired          = errors.New("listing_expired")
	ErrAuctionNotOver          = errors.New("auction_not_over")
	ErrBidTooLow               = errors.New("bid_too_low")
	ErrNoBidFound              = errors.New("no_bid_found")
	ErrInsufficientFunds       = errors.New("insufficient_funds")
	ErrAccountNotFound         = errors.New("account_not_found")
	ErrAccountAlreadyExists    = errors.New("account_already_exists")
	ErrAssetNotFound           = errors.New("asset_not_found")
	ErrAssetAlreadyExists      = errors.New("asset_already_exists")
	ErrWebhookNotFound         = errors.New("webhook_not_found")
)

// ValidationError represents a request validation failure.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
