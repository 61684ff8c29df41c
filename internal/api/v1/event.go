package v1

import (
	"fmt"
	"time"
)

// Event types consumed by the dashboard. The store accepts any non-empty tag.
const (
	EventPageView = "page_view"
	EventClickBuy = "click_buy"
)

// DirectReferrer is recorded when a page view arrives without a referrer.
const DirectReferrer = "direct"

// AnalyticsEvent is a single visitor action captured by the storefront.
// Events are append-only: once the store has assigned ID and CreatedAt
// they are never modified.
type AnalyticsEvent struct {
	// ID is assigned by the store on append.
	ID string `json:"id"`

	// EventType is the tag the aggregations filter on (page_view, click_buy).
	EventType string `json:"event_type"`

	// CreatedAt is the store-assigned insertion time. It is non-decreasing in
	// insertion order for a single store, not strictly increasing across writers.
	CreatedAt time.Time `json:"created_at"`

	// Metadata is a free-form bag of primitive values whose keys depend on
	// EventType (see PageViewMetadata and ClickBuyMetadata).
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Validate checks the fields a caller must supply before append.
func (e *AnalyticsEvent) Validate() error {
	if e.EventType == "" {
		return fmt.Errorf("event_type is required")
	}

	for key, value := range e.Metadata {
		if key == "" {
			return fmt.Errorf("metadata keys must not be empty")
		}
		if !isPrimitive(value) {
			return fmt.Errorf("metadata %q must be a primitive value, got %T", key, value)
		}
	}

	return nil
}

// IsPageView reports whether the event counts towards traffic.
func (e *AnalyticsEvent) IsPageView() bool {
	return e.EventType == EventPageView
}

// PageViewMetadata builds the metadata recorded for a page render.
// An empty referrer is stored as DirectReferrer.
func PageViewMetadata(path, referrer, screen string) map[string]interface{} {
	if referrer == "" {
		referrer = DirectReferrer
	}
	md := map[string]interface{}{
		"path":     path,
		"referrer": referrer,
	}
	if screen != "" {
		md["screen"] = screen
	}
	return md
}

// ClickBuyMetadata builds the metadata recorded when a visitor follows an
// affiliate link. Price is kept as the display string the visitor saw.
func ClickBuyMetadata(product, price, destination, referrer string) map[string]interface{} {
	return map[string]interface{}{
		"product":     product,
		"price":       price,
		"destination": destination,
		"referrer":    referrer,
	}
}

func isPrimitive(v interface{}) bool {
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return true
	default:
		return false
	}
}
