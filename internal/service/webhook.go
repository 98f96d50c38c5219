package service

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/store"
)

// Valid webhook event types.
var validWebhookEvents = map[string]bool{
	domain.EventListingStarted:     true,
	domain.EventBidChanged:         true,
	domain.EventSaleCompleted:      true,
	domain.EventAuctionEnded:       true,
	domain.EventFeeScheduleChanged: true,
}

// UpsertWebhookRequest represents the input for webhook registration.
type UpsertWebhookRequest struct {
	SubscriberID string
	URL          string
	Events       []string
}

// WebhookService handles webhook CRUD and implements domain.EventSink by
// fanning each published event out to every registration for its type.
// Delivery is fire-and-forget over HTTPS: a slow or dead indexer never
// blocks a settlement.
type WebhookService struct {
	store  *store.WebhookStore
	client *http.Client
}

// NewWebhookService creates a new WebhookService with the given dispatch
// timeout.
func NewWebhookService(webhookStore *store.WebhookStore, timeout time.Duration) *WebhookService {
	return &WebhookService{
		store: webhookStore,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upsert validates the request and creates or updates webhook
// registrations. Returns the resulting webhooks, whether any new
// registrations were created, and any error.
func (s *WebhookService) Upsert(req UpsertWebhookRequest) ([]*domain.Webhook, bool, error) {
	if !accountIDRegex.MatchString(req.SubscriberID) {
		return nil, false, &domain.ValidationError{
			Message: "subscriber_id must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}

	if req.URL == "" {
		return nil, false, &domain.ValidationError{Message: "url is required"}
	}
	if len(req.URL) > 2048 {
		return nil, false, &domain.ValidationError{Message: "url must be at most 2048 characters"}
	}
	parsed, err := url.ParseRequestURI(req.URL)
	if err != nil || !parsed.IsAbs() {
		return nil, false, &domain.ValidationError{Message: "url must be a valid absolute URL"}
	}
	if parsed.Scheme != "https" {
		return nil, false, &domain.ValidationError{Message: "url must use https scheme"}
	}

	if len(req.Events) == 0 {
		return nil, false, &domain.ValidationError{Message: "events must be a non-empty array"}
	}

	// Deduplicate events while preserving order and validating.
	seen := make(map[string]bool, len(req.Events))
	dedupedEvents := make([]string, 0, len(req.Events))
	for _, event := range req.Events {
		if !validWebhookEvents[event] {
			return nil, false, &domain.ValidationError{
				Message: "Unknown event type: " + event + ". Must be one of: listing.started, bid.changed, sale.completed, auction.ended, fee_schedule.changed",
			}
		}
		if !seen[event] {
			seen[event] = true
			dedupedEvents = append(dedupedEvents, event)
		}
	}

	now := time.Now().UTC().Truncate(time.Second)
	anyCreated := false
	webhooks := make([]*domain.Webhook, 0, len(dedupedEvents))

	for _, event := range dedupedEvents {
		w := &domain.Webhook{
			WebhookID:    uuid.New().String(),
			SubscriberID: req.SubscriberID,
			Event:        event,
			URL:          req.URL,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		created := s.store.Upsert(w)
		if created {
			anyCreated = true
			webhooks = append(webhooks, w)
		} else {
			// Fetch the existing registration to return its stable ID.
			if existing := s.store.GetBySubscriberEvent(req.SubscriberID, event); existing != nil {
				webhooks = append(webhooks, existing)
			}
		}
	}

	return webhooks, anyCreated, nil
}

// List returns all webhook registrations for a subscriber.
func (s *WebhookService) List(subscriberID string) ([]*domain.Webhook, error) {
	if !accountIDRegex.MatchString(subscriberID) {
		return nil, &domain.ValidationError{
			Message: "subscriber_id must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	return s.store.ListBySubscriber(subscriberID), nil
}

// Delete removes a webhook registration by ID.
func (s *WebhookService) Delete(webhookID string) error {
	return s.store.Delete(webhookID)
}

// eventPayload is the JSON envelope delivered to subscribers.
type eventPayload struct {
	Event     string `json:"event"`
	Timestamp string `json:"timestamp"`
	Data      any    `json:"data"`
}

// Publish implements domain.EventSink. Marshalling and delivery happen off
// the caller's goroutine.
func (s *WebhookService) Publish(ev domain.Event) {
	targets := s.store.ListByEvent(ev.EventName())
	if len(targets) == 0 {
		return
	}

	payload := eventPayload{
		Event:     ev.EventName(),
		Timestamp: time.Now().UTC().Truncate(time.Second).Format(time.RFC3339),
		Data:      buildEventData(ev),
	}

	for _, wh := range targets {
		go s.deliver(wh, ev.EventName(), payload)
	}
}

// Webhook data shapes, one per event type. Fields mirror the domain events
// with snake_case keys; nullable fields use pointers.
type listingStartedData struct {
	MarketplaceID  string `json:"marketplace_id"`
	ListingID      string `json:"listing_id"`
	Asset          string `json:"asset"`
	Seller         string `json:"seller"`
	MinBid         uint64 `json:"min_bid"`
	InstantPrice   uint64 `json:"instant_price"`
	StartTime      string `json:"start_time"`
	ExpirationTime string `json:"expiration_time"`
}

type bidChangedData struct {
	MarketplaceID string  `json:"marketplace_id"`
	ListingID     string  `json:"listing_id"`
	PrevBidder    *string `json:"prev_bidder"`
	PrevAmount    *uint64 `json:"prev_amount"`
	NewBidder     string  `json:"new_bidder"`
	NewAmount     uint64  `json:"new_amount"`
}

type saleCompletedData struct {
	MarketplaceID  string `json:"marketplace_id"`
	ListingID      string `json:"listing_id"`
	Asset          string `json:"asset"`
	Seller         string `json:"seller"`
	Buyer          string `json:"buyer"`
	Price          uint64 `json:"price"`
	RoyaltyPaid    uint64 `json:"royalty_paid"`
	CommissionPaid uint64 `json:"commission_paid"`
	SellerProceeds uint64 `json:"seller_proceeds"`
}

type auctionEndedData struct {
	MarketplaceID string `json:"marketplace_id"`
	ListingID     string `json:"listing_id"`
	Asset         string `json:"asset"`
	Seller        string `json:"seller"`
}

type feeScheduleChangedData struct {
	MarketplaceID string `json:"marketplace_id"`
	Field         string `json:"field"`
}

func buildEventData(ev domain.Event) any {
	switch e := ev.(type) {
	case domain.ListingStartedEvent:
		return listingStartedData{
			MarketplaceID:  e.MarketplaceID,
			ListingID:      e.ListingID,
			Asset:          e.Asset,
			Seller:         e.Seller,
			MinBid:         e.MinBid,
			InstantPrice:   e.InstantPrice,
			StartTime:      e.StartTime.UTC().Format(time.RFC3339),
			ExpirationTime: e.ExpirationTime.UTC().Format(time.RFC3339),
		}
	case domain.BidChangedEvent:
		return bidChangedData{
			MarketplaceID: e.MarketplaceID,
			ListingID:     e.ListingID,
			PrevBidder:    e.PrevBidder,
			PrevAmount:    e.PrevAmount,
			NewBidder:     e.NewBidder,
			NewAmount:     e.NewAmount,
		}
	case domain.SaleCompletedEvent:
		return saleCompletedData{
			MarketplaceID:  e.MarketplaceID,
			ListingID:      e.ListingID,
			Asset:          e.Asset,
			Seller:         e.Seller,
			Buyer:          e.Buyer,
			Price:          e.Price,
			RoyaltyPaid:    e.RoyaltyPaid,
			CommissionPaid: e.CommissionPaid,
			SellerProceeds: e.SellerProceeds,
		}
	case domain.AuctionEndedEvent:
		return auctionEndedData{
			MarketplaceID: e.MarketplaceID,
			ListingID:     e.ListingID,
			Asset:         e.Asset,
			Seller:        e.Seller,
		}
	case domain.FeeScheduleChangedEvent:
		return feeScheduleChangedData{
			MarketplaceID: e.MarketplaceID,
			Field:         e.Field,
		}
	default:
		return nil
	}
}

// deliver sends the webhook payload via HTTP POST with the required
// headers. Errors are silently ignored (fire-and-forget).
func (s *WebhookService) deliver(wh *domain.Webhook, eventType string, payload eventPayload) {
	body, err := json.Marshal(payload)
	if err != nil {
		return
	}

	req, err := http.NewRequest(http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", uuid.New().String())
	req.Header.Set("X-Webhook-Id", wh.WebhookID)
	req.Header.Set("X-Event-Type", eventType)

	resp, err := s.client.Do(req)
	if err != nil {
		return
	}
	resp.Body.Close()
}
