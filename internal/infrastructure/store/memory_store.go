package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory document store used for local development
// and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]Document // collection -> id -> document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]Document),
	}
}

func (ms *MemoryStore) Find(ctx context.Context, collection, id string) (Document, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	doc, ok := ms.data[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (ms *MemoryStore) FindAll(ctx context.Context, collection string) ([]Document, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	docs := make([]Document, 0, len(ms.data[collection]))
	for _, doc := range ms.data[collection] {
		docs = append(docs, cloneDocument(doc))
	}
	return docs, nil
}

func (ms *MemoryStore) Insert(ctx context.Context, collection string, doc Document) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	id, _ := doc["id"].(string)
	if id == "" {
		id = uuid.New().String()
	}

	stored := cloneDocument(doc)
	stored["id"] = id

	if ms.data[collection] == nil {
		ms.data[collection] = make(map[string]Document)
	}
	ms.data[collection][id] = stored
	return id, nil
}

func (ms *MemoryStore) Update(ctx context.Context, collection, id string, doc Document) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.data[collection][id]; !ok {
		return ErrNotFound
	}

	stored := cloneDocument(doc)
	stored["id"] = id
	ms.data[collection][id] = stored
	return nil
}

// cloneDocument deep-copies a document through its JSON form so nested
// maps and slices never alias the stored copy.
func cloneDocument(doc Document) Document {
	copied, err := Encode(doc)
	if err != nil {
		return doc
	}
	return copied
}

func (ms *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, ok := ms.data[collection][id]; !ok {
		return ErrNotFound
	}
	delete(ms.data[collection], id)
	return nil
}
