package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/example/woodenmart/internal/catalog"
	"github.com/example/woodenmart/internal/checkout"
	"github.com/example/woodenmart/internal/infrastructure/store"
	"github.com/example/woodenmart/internal/order"
	"github.com/example/woodenmart/internal/payments"
)

type Handlers struct {
	catalogSvc  *catalog.Service
	orders      *order.Repository
	checkoutSvc *checkout.Service
	store       store.DocumentStore
}

func NewHandlers(catalogSvc *catalog.Service, orders *order.Repository, checkoutSvc *checkout.Service, ds store.DocumentStore) *Handlers {
	return &Handlers{
		catalogSvc:  catalogSvc,
		orders:      orders,
		checkoutSvc: checkoutSvc,
		store:       ds,
	}
}

// Root reports service identity.
func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"name": "WoodenMart API", "status": "ok"})
}

// Health reports persistence-service connectivity.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{"backend": "running", "database": "connected"}
	if _, err := h.store.FindAll(r.Context(), catalog.Collection); err != nil {
		resp["database"] = "error"
		resp["error"] = err.Error()
	}
	respondJSON(w, http.StatusOK, resp)
}

// Product Handlers

func (h *Handlers) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalogSvc.List(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (h *Handlers) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")
	p, err := h.catalogSvc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, p)
}

func (h *Handlers) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p catalog.Product
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := h.catalogSvc.Create(r.Context(), p)
	if err != nil {
		if isCatalogValidationError(err) {
			respondJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handlers) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")

	var patch catalog.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.catalogSvc.Update(r.Context(), id, patch); err != nil {
		switch {
		case errors.Is(err, catalog.ErrProductNotFound):
			respondJSONError(w, "Product not found", http.StatusNotFound)
		case isCatalogValidationError(err):
			respondJSONError(w, err.Error(), http.StatusBadRequest)
		default:
			respondJSONError(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (h *Handlers) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/products/")

	if err := h.catalogSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondJSONError(w, "Product not found", http.StatusNotFound)
			return
		}
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// Order Handlers

func (h *Handlers) GetOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// UpdateOrderStatus transitions an order through the fulfillment flow.
func (h *Handlers) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	id := extractPathParam(r.URL.Path, "/orders/")
	id = strings.TrimSuffix(id, "/status")

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), id, target)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			respondJSONError(w, "Order not found", http.StatusNotFound)
			return
		}
		// Any other failure here is a rejected transition
		respondJSONError(w, err.Error(), http.StatusConflict)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Checkout Handler

// CheckoutRequest is the wire shape of a checkout call.
type CheckoutRequest struct {
	Items         []checkout.LineRequest `json:"items"`
	CustomerEmail string                 `json:"customer_email"`
}

func (h *Handlers) Checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	lines, err := checkout.ParseLines(req.Items)
	if err != nil {
		respondJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome, err := h.checkoutSvc.Checkout(r.Context(), lines, req.CustomerEmail)
	if err != nil {
		h.respondCheckoutError(w, err)
		return
	}

	if outcome.RedirectURL != "" {
		respondJSON(w, http.StatusOK, map[string]string{"url": outcome.RedirectURL})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"success":           true,
		"order_id":          outcome.Order.ID,
		"payment_simulated": true,
	})
}

func (h *Handlers) respondCheckoutError(w http.ResponseWriter, err error) {
	var procErr *payments.ProcessorError
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		respondJSONError(w, "Product not found", http.StatusNotFound)
	case errors.As(err, &procErr):
		respondJSONError(w, procErr.Message, http.StatusBadRequest)
	case errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrMissingEmail),
		errors.Is(err, checkout.ErrMissingProductID),
		errors.Is(err, checkout.ErrInvalidQuantity):
		respondJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		respondJSONError(w, err.Error(), http.StatusInternalServerError)
	}
}

func isCatalogValidationError(err error) bool {
	return errors.Is(err, catalog.ErrMissingTitle) ||
		errors.Is(err, catalog.ErrNegativePrice) ||
		errors.Is(err, catalog.ErrNegativeStock)
}
