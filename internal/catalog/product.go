package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is applied when a product is created without one.
const DefaultCurrency = "inr"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrMissingTitle    = errors.New("product title is required")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrNegativeStock   = errors.New("product stock must not be negative")
)

// Product is a catalog record. Checkout reads it but never writes it.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	Images      []string        `json:"images"`
	Category    string          `json:"category,omitempty"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

// Validate enforces the catalog invariants: price >= 0, stock >= 0.
func (p *Product) Validate() error {
	if p.Title == "" {
		return ErrMissingTitle
	}
	if p.Price.IsNegative() {
		return ErrNegativePrice
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	return nil
}

// Patch carries a partial product update; nil fields are left untouched.
type Patch struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Currency    *string          `json:"currency"`
	Images      *[]string        `json:"images"`
	Category    *string          `json:"category"`
	Stock       *int             `json:"stock"`
	Featured    *bool            `json:"featured"`
}

func (patch Patch) apply(p *Product) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Currency != nil {
		p.Currency = *patch.Currency
	}
	if patch.Images != nil {
		p.Images = *patch.Images
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
}
