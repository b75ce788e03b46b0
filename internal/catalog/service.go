package catalog

import (
	"context"
	"errors"

	"github.com/example/woodenmart/internal/infrastructure/store"
)

// Collection is the persistence-service collection holding products.
const Collection = "product"

// Service resolves and manages catalog products.
type Service struct {
	store store.DocumentStore
}

func NewService(ds store.DocumentStore) *Service {
	return &Service{store: ds}
}

// Get resolves a product id to its current catalog record.
// This is the lookup checkout relies on for price integrity.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	doc, err := s.store.Find(ctx, Collection, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	var p Product
	if err := store.Decode(doc, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns every product in the catalog.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	docs, err := s.store.FindAll(ctx, Collection)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(docs))
	for _, doc := range docs {
		var p Product
		if err := store.Decode(doc, &p); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, nil
}

// Create validates and stores a new product, returning its id.
func (s *Service) Create(ctx context.Context, p Product) (string, error) {
	if p.Currency == "" {
		p.Currency = DefaultCurrency
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	doc, err := store.Encode(p)
	if err != nil {
		return "", err
	}
	return s.store.Insert(ctx, Collection, doc)
}

// Update applies a partial patch to an existing product.
func (s *Service) Update(ctx context.Context, id string, patch Patch) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	patch.apply(p)
	if err := p.Validate(); err != nil {
		return err
	}

	doc, err := store.Encode(p)
	if err != nil {
		return err
	}
	if err := s.store.Update(ctx, Collection, id, doc); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

// Delete removes a product from the catalog.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, Collection, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}
