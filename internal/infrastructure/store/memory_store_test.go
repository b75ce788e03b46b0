package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_InsertAndFind(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	id, err := ms.Insert(ctx, "product", Document{"title": "Oak Table"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	doc, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	assert.Equal(t, "Oak Table", doc["title"])
	assert.Equal(t, id, doc["id"])
}

func TestMemoryStore_InsertKeepsProvidedID(t *testing.T) {
	ms := NewMemoryStore()

	id, err := ms.Insert(context.Background(), "product", Document{"id": "prod-1", "title": "Chair"})
	require.NoError(t, err)
	assert.Equal(t, "prod-1", id)
}

func TestMemoryStore_FindNotFound(t *testing.T) {
	ms := NewMemoryStore()

	_, err := ms.Find(context.Background(), "product", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_FindAll(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	_, err := ms.Insert(ctx, "product", Document{"title": "A"})
	require.NoError(t, err)
	_, err = ms.Insert(ctx, "product", Document{"title": "B"})
	require.NoError(t, err)
	_, err = ms.Insert(ctx, "order", Document{"total": "100"})
	require.NoError(t, err)

	docs, err := ms.FindAll(ctx, "product")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestMemoryStore_Update(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	id, err := ms.Insert(ctx, "product", Document{"title": "Old"})
	require.NoError(t, err)

	err = ms.Update(ctx, "product", id, Document{"title": "New"})
	require.NoError(t, err)

	doc, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	assert.Equal(t, "New", doc["title"])
	assert.Equal(t, id, doc["id"])
}

func TestMemoryStore_UpdateNotFound(t *testing.T) {
	ms := NewMemoryStore()

	err := ms.Update(context.Background(), "product", "missing", Document{"title": "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	id, err := ms.Insert(ctx, "product", Document{"title": "Gone"})
	require.NoError(t, err)

	require.NoError(t, ms.Delete(ctx, "product", id))

	_, err = ms.Find(ctx, "product", id)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, ms.Delete(ctx, "product", id), ErrNotFound)
}

func TestMemoryStore_FindReturnsCopy(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	id, err := ms.Insert(ctx, "product", Document{"title": "Stable"})
	require.NoError(t, err)

	doc, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	doc["title"] = "Mutated"

	again, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	assert.Equal(t, "Stable", again["title"])
}

func TestMemoryStore_FindCopiesNestedValues(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	id, err := ms.Insert(ctx, "product", Document{
		"title":  "Shelf",
		"images": []any{"a.jpg", "b.jpg"},
		"meta":   map[string]any{"wood": "oak"},
	})
	require.NoError(t, err)

	doc, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	doc["images"].([]any)[0] = "hacked.jpg"
	doc["meta"].(map[string]any)["wood"] = "plywood"

	again, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", again["images"].([]any)[0])
	assert.Equal(t, "oak", again["meta"].(map[string]any)["wood"])
}

func TestMemoryStore_InsertCopiesNestedValues(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	images := []any{"a.jpg"}
	id, err := ms.Insert(ctx, "product", Document{"title": "Bench", "images": images})
	require.NoError(t, err)

	images[0] = "swapped.jpg"

	doc, err := ms.Find(ctx, "product", id)
	require.NoError(t, err)
	assert.Equal(t, "a.jpg", doc["images"].([]any)[0])
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	type record struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Stock int    `json:"stock"`
	}

	doc, err := Encode(record{ID: "r-1", Title: "Bench", Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "r-1", doc["id"])

	var out record
	require.NoError(t, Decode(doc, &out))
	assert.Equal(t, "Bench", out.Title)
	assert.Equal(t, 3, out.Stock)
}
