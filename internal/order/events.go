package order

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const EventOrderPlaced = "order.placed"

// Envelope wraps event payloads on the wire so consumers can dispatch
// on the event type before unmarshalling the payload.
type Envelope struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// PlacedEvent is published after an order has been persisted. It carries
// everything a consumer needs so no read-back is required.
type PlacedEvent struct {
	OrderID   string          `json:"order_id"`
	UserEmail string          `json:"user_email"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Currency  string          `json:"currency"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// NewPlacedEvent builds the event payload for a persisted order.
func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		OrderID:   o.ID,
		UserEmail: o.UserEmail,
		Items:     o.Items,
		Total:     o.Total,
		Currency:  o.Currency,
		PlacedAt:  o.CreatedAt,
	}
}

// Envelope wraps the event for publishing.
func (e PlacedEvent) Envelope() (Envelope, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return Envelope{}, err
	}
	return Envelope{EventType: EventOrderPlaced, Data: data}, nil
}
