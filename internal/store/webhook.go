package store

import (
	"sync"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// WebhookStore is a thread-safe in-memory store for webhooks.
// Primary index: webhook_id → webhook.
// Secondary indexes: subscriber_id → event → webhook, and event → webhooks
// (dispatch fans out to every subscriber of an event).
type WebhookStore struct {
	mu           sync.RWMutex
	webhooks     map[string]*domain.Webhook
	bySubscriber map[string]map[string]*domain.Webhook
	byEvent      map[string]map[string]*domain.Webhook // event → webhook_id → webhook
}

// NewWebhookStore creates an empty WebhookStore.
func NewWebhookStore() *WebhookStore {
	return &WebhookStore{
		webhooks:     make(map[string]*domain.Webhook),
		bySubscriber: make(map[string]map[string]*domain.Webhook),
		byEvent:      make(map[string]map[string]*domain.Webhook),
	}
}

// Upsert inserts or updates a webhook keyed by (subscriber_id, event). If a
// registration already exists for that pair, the URL and UpdatedAt are
// updated (the webhook_id remains stable). Returns true if a new
// registration was created.
func (s *WebhookStore) Upsert(w *domain.Webhook) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if events, ok := s.bySubscriber[w.SubscriberID]; ok {
		if existing, ok := events[w.Event]; ok {
			if existing.URL != w.URL {
				existing.URL = w.URL
				existing.UpdatedAt = w.UpdatedAt
			}
			return false
		}
	}

	s.webhooks[w.WebhookID] = w

	if s.bySubscriber[w.SubscriberID] == nil {
		s.bySubscriber[w.SubscriberID] = make(map[string]*domain.Webhook)
	}
	s.bySubscriber[w.SubscriberID][w.Event] = w

	if s.byEvent[w.Event] == nil {
		s.byEvent[w.Event] = make(map[string]*domain.Webhook)
	}
	s.byEvent[w.Event][w.WebhookID] = w

	return true
}

// Get retrieves a webhook by ID. It returns
// domain.ErrWebhookNotFound if the webhook does not exist.
func (s *WebhookStore) Get(id string) (*domain.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.webhooks[id]
	if !ok {
		return nil, domain.ErrWebhookNotFound
	}
	return w, nil
}

// ListBySubscriber returns all webhooks for a subscriber.
func (s *WebhookStore) ListBySubscriber(subscriberID string) []*domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.bySubscriber[subscriberID]
	result := make([]*domain.Webhook, 0, len(events))
	for _, w := range events {
		result = append(result, w)
	}
	return result
}

// ListByEvent returns every registration for an event type.
func (s *WebhookStore) ListByEvent(event string) []*domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.byEvent[event]
	result := make([]*domain.Webhook, 0, len(byID))
	for _, w := range byID {
		result = append(result, w)
	}
	return result
}

// GetBySubscriberEvent returns the webhook for a specific subscriber+event
// pair, or nil if no registration exists.
func (s *WebhookStore) GetBySubscriberEvent(subscriberID, event string) *domain.Webhook {
	s.mu.RLock()
	defer s.mu.RUnlock()

	events := s.bySubscriber[subscriberID]
	if events == nil {
		return nil
	}
	return events[event]
}

// Delete removes a webhook by ID and cleans up all indexes. It returns
// domain.ErrWebhookNotFound if the webhook does not exist.
func (s *WebhookStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.webhooks[id]
	if !ok {
		return domain.ErrWebhookNotFound
	}

	delete(s.webhooks, id)

	if events, ok := s.bySubscriber[w.SubscriberID]; ok {
		delete(events, w.Event)
		if len(events) == 0 {
			delete(s.bySubscriber, w.SubscriberID)
		}
	}
	if byID, ok := s.byEvent[w.Event]; ok {
		delete(byID, id)
		if len(byID) == 0 {
			delete(s.byEvent, w.Event)
		}
	}

	return nil
}
