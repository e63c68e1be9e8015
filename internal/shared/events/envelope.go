package events

import (
	"encoding/json"
	"time"
)

// Envelope is the shared event shape used across pixmart contexts.
type Envelope struct {
	EventID        string          `json:"event_id"`
	EventType      string          `json:"event_type"`
	SourceService  string          `json:"source_service"`
	OccurredAtUTC  time.Time       `json:"occurred_at_utc"`
	EntityType     string          `json:"entity_type"`
	EntityID       string          `json:"entity_id"`
	PayloadVersion int             `json:"payload_version"`
	Payload        json.RawMessage `json:"payload"`
}

// TopicOrderFulfillable carries order transitions into approved/delivered so
// the download context can grant entitlements out of band. At-least-once;
// consumers must be replay safe.
const TopicOrderFulfillable = "order.fulfillable"

const EventTypeOrderFulfillable = "commerce.order.fulfillable"

// OrderFulfillablePayload is the v1 payload on TopicOrderFulfillable.
type OrderFulfillablePayload struct {
	OrderID string                     `json:"order_id"`
	BuyerID string                     `json:"buyer_id"`
	Status  string                     `json:"status"`
	Items   []OrderFulfillableLineItem `json:"items"`
}

type OrderFulfillableLineItem struct {
	ListingID string  `json:"listing_id"`
	VendorID  string  `json:"vendor_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
