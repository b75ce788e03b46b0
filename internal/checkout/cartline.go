package checkout

import "errors"

var (
	ErrEmptyCart        = errors.New("checkout requires at least one item")
	ErrMissingProductID = errors.New("cart line product id is required")
	ErrInvalidQuantity  = errors.New("cart line quantity must be at least 1")
	ErrMissingEmail     = errors.New("customer email is required")
)

// CartLine is a validated (product reference, quantity) pair. Construct
// it through NewCartLine or LineRequest so the orchestrator never sees
// an invalid quantity. The client never supplies a price.
type CartLine struct {
	ProductID string
	Quantity  int
}

// NewCartLine validates a cart line at the boundary.
func NewCartLine(productID string, quantity int) (CartLine, error) {
	if productID == "" {
		return CartLine{}, ErrMissingProductID
	}
	if quantity < 1 {
		return CartLine{}, ErrInvalidQuantity
	}
	return CartLine{ProductID: productID, Quantity: quantity}, nil
}

// LineRequest is the wire shape of one cart line. Quantity is a pointer
// so an omitted quantity (defaults to 1) can be told apart from an
// explicit zero (rejected).
type LineRequest struct {
	ProductID string `json:"product_id"`
	Quantity  *int   `json:"quantity"`
}

// CartLine validates the request into a CartLine.
func (r LineRequest) CartLine() (CartLine, error) {
	quantity := 1
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	return NewCartLine(r.ProductID, quantity)
}

// ParseLines validates a full request line list.
func ParseLines(reqs []LineRequest) ([]CartLine, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyCart
	}
	lines := make([]CartLine, 0, len(reqs))
	for _, req := range reqs {
		line, err := req.CartLine()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
