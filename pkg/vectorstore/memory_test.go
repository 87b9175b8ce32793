package vectorstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreQueryOrdersByDistance(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	err := store.Upsert(ctx, "twin_style_abc", []Document{
		{ID: "far", Content: "orthogonal doc", Vector: []float32{0, 1}},
		{ID: "near", Content: "aligned doc", Vector: []float32{1, 0}},
		{ID: "mid", Content: "diagonal doc", Vector: []float32{1, 1}},
	})
	assert.NoError(t, err)

	res, err := store.Query(ctx, "twin_style_abc", []float32{1, 0}, 3)
	assert.NoError(t, err)
	assert.Equal(t, []string{"aligned doc", "diagonal doc", "orthogonal doc"}, res.Documents)
	assert.InDelta(t, 0.0, res.Distances[0], 1e-9)
	assert.InDelta(t, 1.0, res.Distances[2], 1e-9)
	// Distances are non-decreasing.
	for i := 1; i < len(res.Distances); i++ {
		assert.GreaterOrEqual(t, res.Distances[i], res.Distances[i-1])
	}
}

func TestMemoryStoreQueryRespectsK(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	docs := []Document{
		{ID: "a", Content: "a", Vector: []float32{1, 0}},
		{ID: "b", Content: "b", Vector: []float32{0.9, 0.1}},
		{ID: "c", Content: "c", Vector: []float32{0, 1}},
	}
	assert.NoError(t, store.Upsert(ctx, "coll", docs))

	res, err := store.Query(ctx, "coll", []float32{1, 0}, 2)
	assert.NoError(t, err)
	assert.Len(t, res.Documents, 2)
	assert.Len(t, res.Distances, 2)
}

func TestMemoryStoreEmptyCollection(t *testing.T) {
	store := NewMemoryStore()

	res, err := store.Query(context.Background(), "never_written", []float32{1, 0}, 5)
	assert.NoError(t, err)
	assert.Empty(t, res.Documents)
	assert.Empty(t, res.Distances)
}

func TestMemoryStoreUpsertOverwritesByID(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	assert.NoError(t, store.Upsert(ctx, "coll", []Document{{ID: "x", Content: "old", Vector: []float32{1, 0}}}))
	assert.NoError(t, store.Upsert(ctx, "coll", []Document{{ID: "x", Content: "new", Vector: []float32{1, 0}}}))

	count, err := store.Count(ctx, "coll")
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)

	res, err := store.Query(ctx, "coll", []float32{1, 0}, 1)
	assert.NoError(t, err)
	assert.Equal(t, []string{"new"}, res.Documents)
}

func TestCosineDistanceEdgeCases(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2}, []float32{1, 2}, 0.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 1.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, 2.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 1.0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineDistance(tt.a, tt.b), 1e-9)
		})
	}
}
