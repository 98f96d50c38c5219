package store

import (
	"sync"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// MarketplaceStore is a thread-safe in-memory store for marketplaces,
// keyed by marketplace_id.
type MarketplaceStore struct {
	mu           sync.RWMutex
	marketplaces map[string]*domain.Marketplace
}

// NewMarketplaceStore creates an empty MarketplaceStore.
func NewMarketplaceStore() *MarketplaceStore {
	return &MarketplaceStore{
		marketplaces: make(map[string]*domain.Marketplace),
	}
}

// Create adds a marketplace to the store.
func (s *MarketplaceStore) Create(m *domain.Marketplace) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.marketplaces[m.MarketplaceID] = m
}

// Get retrieves a marketplace by ID. It returns
// domain.ErrMarketplaceNotFound if the marketplace does not exist.
func (s *MarketplaceStore) Get(id string) (*domain.Marketplace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.marketplaces[id]
	if !ok {
		return nil, domain.ErrMarketplaceNotFound
	}
	return m, nil
}

// Exists returns true if a marketplace with the given ID exists.
func (s *MarketplaceStore) Exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.marketplaces[id]
	return ok
}
