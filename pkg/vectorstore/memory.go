package vectorstore

import (
	"context"
	"math"
	"sort"
	"sync"
)

// MemoryStore is an in-memory Store with cosine distance scoring.
// Used for tests and local development without Postgres.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Document
}

var _ Store = &MemoryStore{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		collections: make(map[string]map[string]Document),
	}
}

func (s *MemoryStore) Upsert(ctx context.Context, collection string, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]Document)
		s.collections[collection] = coll
	}
	for _, doc := range docs {
		coll[doc.ID] = doc
	}
	return nil
}

func (s *MemoryStore) Query(ctx context.Context, collection string, vector []float32, k int) (*QueryResult, error) {
	if k <= 0 {
		k = 5
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	coll, ok := s.collections[collection]
	if !ok || len(coll) == 0 {
		// Empty collection is a valid, non-error result.
		return &QueryResult{}, nil
	}

	type scored struct {
		content  string
		distance float64
	}
	results := make([]scored, 0, len(coll))
	for _, doc := range coll {
		results = append(results, scored{
			content:  doc.Content,
			distance: cosineDistance(vector, doc.Vector),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].distance < results[j].distance
	})

	if len(results) > k {
		results = results[:k]
	}

	out := &QueryResult{
		Documents: make([]string, len(results)),
		Distances: make([]float64, len(results)),
	}
	for i, r := range results {
		out.Documents[i] = r.content
		out.Distances[i] = r.distance
	}
	return out, nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.collections[collection])), nil
}

// cosineDistance returns 1 - cosine_similarity, matching pgvector's <=>
// operator. Mismatched or zero vectors score the maximum distance.
func cosineDistance(a []float32, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 1.0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 1.0
	}
	return 1.0 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
}
