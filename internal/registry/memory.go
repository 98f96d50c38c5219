// Package registry provides an in-memory implementation of the asset
// registry the engine takes custody through. Ownership is an explicit
// per-asset field mutated only by authority-checked transfers.
package registry

import (
	"sync"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

type record struct {
	owner      string
	royalty    domain.RoyaltyInfo
	hasRoyalty bool
}

// Memory is a thread-safe in-memory asset registry keyed by asset ID.
type Memory struct {
	mu     sync.RWMutex
	assets map[string]*record
}

// NewMemory creates an empty in-memory registry.
func NewMemory() *Memory {
	return &Memory{
		assets: make(map[string]*record),
	}
}

// Register adds an asset with its initial owner and optional royalty.
// Royalty fractions above 100% or with a zero denominator are rejected so
// settlement math never sees them.
func (r *Memory) Register(asset, owner string, royalty *domain.RoyaltyInfo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.assets[asset]; exists {
		return domain.ErrAssetAlreadyExists
	}

	rec := &record{owner: owner}
	if royalty != nil {
		if royalty.Denominator == 0 || royalty.Numerator > royalty.Denominator {
			return domain.ErrInvalidFeeConfig
		}
		rec.royalty = *royalty
		rec.hasRoyalty = true
	}
	r.assets[asset] = rec
	return nil
}

// IsOwner reports whether account is the current owner of asset.
func (r *Memory) IsOwner(asset, account string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.assets[asset]
	return ok && rec.owner == account
}

// OwnerOf returns the current owner of asset.
func (r *Memory) OwnerOf(asset string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.assets[asset]
	if !ok {
		return "", domain.ErrAssetNotFound
	}
	return rec.owner, nil
}

// TransferOwnership moves the asset to newOwner. The authority must be the
// current owner; the check and the mutation happen under one lock so there
// is never a moment with zero or two owners.
func (r *Memory) TransferOwnership(asset, authority, newOwner string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.assets[asset]
	if !ok {
		return domain.ErrAssetNotFound
	}
	if rec.owner != authority {
		return domain.ErrNotOwner
	}
	rec.owner = newOwner
	return nil
}

// RoyaltyOf returns the asset's royalty metadata, if any.
func (r *Memory) RoyaltyOf(asset string) (domain.RoyaltyInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.assets[asset]
	if !ok || !rec.hasRoyalty {
		return domain.RoyaltyInfo{}, false
	}
	return rec.royalty, true
}
