package notification

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/woodenmart/internal/email"
	"github.com/example/woodenmart/internal/order"
)

type fakeMailer struct {
	sent []sentMail
	err  error
}

type sentMail struct {
	to      string
	orderID string
	total   decimal.Decimal
	items   []email.OrderItem
}

func (f *fakeMailer) SendOrderConfirmation(to, orderID string, total decimal.Decimal, currency string, items []email.OrderItem) error {
	f.sent = append(f.sent, sentMail{to: to, orderID: orderID, total: total, items: items})
	return f.err
}

func placedEventBytes(t *testing.T, e order.PlacedEvent) []byte {
	t.Helper()
	envelope, err := e.Envelope()
	require.NoError(t, err)
	data, err := json.Marshal(envelope)
	require.NoError(t, err)
	return data
}

func TestHandler_SendsConfirmation(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer)

	event := order.PlacedEvent{
		OrderID:   "order-1",
		UserEmail: "buyer@example.com",
		Items: []order.OrderItem{
			{ProductID: "prod-1", Title: "Oak Table", Quantity: 2, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(200)},
		},
		Total:    decimal.NewFromInt(200),
		Currency: "inr",
		PlacedAt: time.Now(),
	}

	err := handler.HandleEvent(context.Background(), []byte("order-1"), placedEventBytes(t, event))
	require.NoError(t, err)

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "buyer@example.com", mailer.sent[0].to)
	assert.Equal(t, "order-1", mailer.sent[0].orderID)
	assert.True(t, mailer.sent[0].total.Equal(decimal.NewFromInt(200)))
	require.Len(t, mailer.sent[0].items, 1)
	assert.Equal(t, "Oak Table", mailer.sent[0].items[0].Title)
}

func TestHandler_IgnoresOtherEvents(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer)

	envelope, err := json.Marshal(order.Envelope{EventType: "order.shipped", Data: []byte(`{}`)})
	require.NoError(t, err)

	require.NoError(t, handler.HandleEvent(context.Background(), nil, envelope))
	assert.Empty(t, mailer.sent)
}

func TestHandler_SkipsMissingEmail(t *testing.T) {
	mailer := &fakeMailer{}
	handler := NewHandler(mailer)

	event := order.PlacedEvent{OrderID: "order-2", Total: decimal.NewFromInt(10), Currency: "inr"}

	require.NoError(t, handler.HandleEvent(context.Background(), nil, placedEventBytes(t, event)))
	assert.Empty(t, mailer.sent)
}

func TestHandler_MalformedPayload(t *testing.T) {
	handler := NewHandler(&fakeMailer{})

	err := handler.HandleEvent(context.Background(), nil, []byte("not json"))
	assert.Error(t, err)
}
