package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a document does not exist in a collection.
var ErrNotFound = errors.New("document not found")

// Document is a schemaless record as held by the persistence service.
type Document map[string]any

// DocumentStore is the generic persistence service the application talks to.
// Collections are flat namespaces ("product", "order"); no schema is
// enforced beyond what callers marshal in.
type DocumentStore interface {
	// Find retrieves a document by id, or ErrNotFound.
	Find(ctx context.Context, collection, id string) (Document, error)

	// FindAll retrieves every document in a collection.
	FindAll(ctx context.Context, collection string) ([]Document, error)

	// Insert stores a new document and returns its generated id.
	// A non-empty "id" field in the document is respected.
	Insert(ctx context.Context, collection string, doc Document) (string, error)

	// Update replaces an existing document, or returns ErrNotFound.
	Update(ctx context.Context, collection, id string, doc Document) error

	// Delete removes a document, or returns ErrNotFound.
	Delete(ctx context.Context, collection, id string) error
}
