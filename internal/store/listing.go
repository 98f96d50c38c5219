package store

import (
	"sync"
	"time"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/google/btree"
)

// expiryEntry indexes a listing by its expiration deadline.
type expiryEntry struct {
	ExpirationTime time.Time
	ListingID      string
}

// expiryLess orders entries by expiration ascending, then listing_id
// ascending, so Ascend visits the soonest deadlines first.
func expiryLess(a, b expiryEntry) bool {
	if !a.ExpirationTime.Equal(b.ExpirationTime) {
		return a.ExpirationTime.Before(b.ExpirationTime)
	}
	return a.ListingID < b.ListingID
}

// ListingStore is a thread-safe in-memory store for live listings. It keeps
// a primary index by listing_id, a secondary index by marketplace_id, and a
// B-tree ordered by expiration time so the finalizer can find expired
// listings in O(log n) without scanning.
type ListingStore struct {
	mu            sync.RWMutex
	listings      map[string]*domain.Listing
	byMarketplace map[string]map[string]*domain.Listing
	byExpiry      *btree.BTreeG[expiryEntry]
}

// NewListingStore creates an empty ListingStore.
func NewListingStore() *ListingStore {
	const degree = 32
	return &ListingStore{
		listings:      make(map[string]*domain.Listing),
		byMarketplace: make(map[string]map[string]*domain.Listing),
		byExpiry:      btree.NewG[expiryEntry](degree, expiryLess),
	}
}

// Create adds a listing to all three indexes.
func (s *ListingStore) Create(l *domain.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings[l.ListingID] = l

	if s.byMarketplace[l.MarketplaceID] == nil {
		s.byMarketplace[l.MarketplaceID] = make(map[string]*domain.Listing)
	}
	s.byMarketplace[l.MarketplaceID][l.ListingID] = l

	s.byExpiry.ReplaceOrInsert(expiryEntry{
		ExpirationTime: l.ExpirationTime,
		ListingID:      l.ListingID,
	})
}

// Get retrieves a listing by ID. It returns domain.ErrListingNotFound if
// the listing does not exist (settled and withdrawn listings are deleted,
// so terminal listings are indistinguishable from never-created ones).
func (s *ListingStore) Get(id string) (*domain.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	return l, nil
}

// Delete removes a listing from all indexes. Destroyed listing IDs are
// never reused; a new listing always gets a fresh UUID.
func (s *ListingStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.listings[id]
	if !ok {
		return
	}
	delete(s.listings, id)

	if mp := s.byMarketplace[l.MarketplaceID]; mp != nil {
		delete(mp, id)
		if len(mp) == 0 {
			delete(s.byMarketplace, l.MarketplaceID)
		}
	}

	s.byExpiry.Delete(expiryEntry{
		ExpirationTime: l.ExpirationTime,
		ListingID:      l.ListingID,
	})
}

// ListByMarketplace returns the marketplace's live listings.
func (s *ListingStore) ListByMarketplace(marketplaceID string) []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mp := s.byMarketplace[marketplaceID]
	result := make([]*domain.Listing, 0, len(mp))
	for _, l := range mp {
		result = append(result, l)
	}
	return result
}

// ExpiredBefore returns the listings whose deadline is strictly before now,
// soonest first. The walk stops at the first unexpired entry, so the cost
// is proportional to the number of expired listings.
func (s *ListingStore) ExpiredBefore(now time.Time) []*domain.Listing {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var expired []*domain.Listing
	s.byExpiry.Ascend(func(e expiryEntry) bool {
		if !e.ExpirationTime.Before(now) {
			return false
		}
		if l, ok := s.listings[e.ListingID]; ok {
			expired = append(expired, l)
		}
		return true
	})
	return expired
}

// Count returns the number of live listings. Useful for testing.
func (s *ListingStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.listings)
}
