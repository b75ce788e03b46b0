package notification

import (
	"context"
	"encoding/json"
	"log"

	"github.com/shopspring/decimal"

	"github.com/example/woodenmart/internal/email"
	"github.com/example/woodenmart/internal/order"
)

// OrderMailer sends order confirmation mail.
type OrderMailer interface {
	SendOrderConfirmation(to, orderID string, total decimal.Decimal, currency string, items []email.OrderItem) error
}

// Handler processes events for sending notifications
type Handler struct {
	mailer OrderMailer
}

// NewHandler creates a new notification handler
func NewHandler(mailer OrderMailer) *Handler {
	return &Handler{mailer: mailer}
}

// HandleEvent processes an event from Kafka
func (h *Handler) HandleEvent(ctx context.Context, key, value []byte) error {
	var envelope order.Envelope
	if err := json.Unmarshal(value, &envelope); err != nil {
		log.Printf("[Notifier] Failed to unmarshal event: %v", err)
		return err
	}

	// Only order.placed triggers mail
	if envelope.EventType != order.EventOrderPlaced {
		return nil
	}
	return h.handleOrderPlaced(envelope)
}

func (h *Handler) handleOrderPlaced(envelope order.Envelope) error {
	var e order.PlacedEvent
	if err := json.Unmarshal(envelope.Data, &e); err != nil {
		log.Printf("[Notifier] Failed to unmarshal order placed event: %v", err)
		return err
	}

	log.Printf("[Notifier] Processing order placed event for order %s", e.OrderID)

	if e.UserEmail == "" {
		log.Printf("[Notifier] Order %s has no customer email, skipping", e.OrderID)
		return nil
	}

	items := make([]email.OrderItem, 0, len(e.Items))
	for _, item := range e.Items {
		items = append(items, email.OrderItem{
			ProductID: item.ProductID,
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	if err := h.mailer.SendOrderConfirmation(e.UserEmail, e.OrderID, e.Total, e.Currency, items); err != nil {
		log.Printf("[Notifier] Failed to send confirmation for order %s: %v", e.OrderID, err)
		return err
	}

	log.Printf("[Notifier] Sent confirmation for order %s to %s", e.OrderID, e.UserEmail)
	return nil
}
