package order

import (
	"context"
	"errors"
	"time"

	"github.com/example/woodenmart/internal/infrastructure/store"
)

// Collection is the persistence-service collection holding orders.
const Collection = "order"

// Repository persists orders in the document store.
type Repository struct {
	store store.DocumentStore
}

func NewRepository(ds store.DocumentStore) *Repository {
	return &Repository{store: ds}
}

// Insert persists a new order and fills in its generated id and timestamps.
func (r *Repository) Insert(ctx context.Context, o *Order) error {
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	doc, err := store.Encode(o)
	if err != nil {
		return err
	}
	id, err := r.store.Insert(ctx, Collection, doc)
	if err != nil {
		return err
	}
	o.ID = id
	return nil
}

// Get loads an order by id.
func (r *Repository) Get(ctx context.Context, id string) (*Order, error) {
	doc, err := r.store.Find(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	var o Order
	if err := store.Decode(doc, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// List returns every persisted order.
func (r *Repository) List(ctx context.Context) ([]Order, error) {
	docs, err := r.store.FindAll(ctx, Collection)
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, len(docs))
	for _, doc := range docs {
		var o Order
		if err := store.Decode(doc, &o); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

// UpdateStatus transitions an order and persists the result.
func (r *Repository) UpdateStatus(ctx context.Context, id string, target Status) (*Order, error) {
	o, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}

	doc, err := store.Encode(o)
	if err != nil {
		return nil, err
	}
	if err := r.store.Update(ctx, Collection, id, doc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return o, nil
}
