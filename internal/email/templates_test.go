package email

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"1234", "inr", "INR 1,234.00"},
		{"49.9", "usd", "USD 49.90"},
		{"1234567.89", "inr", "INR 1,234,567.89"},
		{"0", "eur", "EUR 0.00"},
		{"-12.5", "inr", "INR -12.50"},
	}

	for _, tt := range tests {
		amount, err := decimal.NewFromString(tt.amount)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, FormatAmount(amount, tt.currency), "amount %s", tt.amount)
	}
}

func TestBuildOrderConfirmationBody(t *testing.T) {
	body := BuildOrderConfirmationBody("order-1234abcd", decimal.NewFromInt(200), "inr", []OrderItem{
		{ProductID: "prod-1", Title: "Oak Table", Quantity: 2, UnitPrice: decimal.NewFromInt(100), Subtotal: decimal.NewFromInt(200)},
	})

	assert.Contains(t, body, "order-1234abcd")
	assert.Contains(t, body, "Oak Table")
	assert.Contains(t, body, "INR 200.00")
}

func TestBuildOrderConfirmationBody_EscapesHTML(t *testing.T) {
	body := BuildOrderConfirmationBody("order-1", decimal.NewFromInt(1), "inr", []OrderItem{
		{ProductID: "prod-1", Title: "<script>alert(1)</script>", Quantity: 1, UnitPrice: decimal.NewFromInt(1), Subtotal: decimal.NewFromInt(1)},
	})

	assert.False(t, strings.Contains(body, "<script>"))
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestBuildOrderConfirmationBody_FallsBackToProductID(t *testing.T) {
	body := BuildOrderConfirmationBody("order-1", decimal.NewFromInt(1), "inr", []OrderItem{
		{ProductID: "prod-42", Quantity: 1, UnitPrice: decimal.NewFromInt(1), Subtotal: decimal.NewFromInt(1)},
	})

	assert.Contains(t, body, "prod-42")
}
