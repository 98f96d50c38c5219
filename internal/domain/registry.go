package domain

// RoyaltyInfo is an asset's creator royalty: a fraction of every sale price
// paid to the payee before any other deduction.
type RoyaltyInfo struct {
	Payee       string
	Numerator   uint64
	Denominator uint64
}

// AssetRegistry is the external system that tracks which entity currently
// owns each asset and exposes its royalty metadata. Ownership is an
// exactly-one-owner-at-a-time relation; transfers are authority-checked.
type AssetRegistry interface {
	// IsOwner reports whether account is the current owner of asset.
	IsOwner(asset, account string) bool

	// TransferOwnership moves the asset to newOwner. The authority must be
	// the current owner; returns ErrNotOwner otherwise, or
	// ErrAssetNotFound for unknown assets.
	TransferOwnership(asset, authority, newOwner string) error

	// RoyaltyOf returns the asset's royalty metadata, if any.
	RoyaltyOf(asset string) (RoyaltyInfo, bool)
}
