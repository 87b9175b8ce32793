package twin

import (
	"context"
	"errors"
	"log"
	"os"
	"testing"

	"ai-boardroom-be/pkg/vectorstore"

	"github.com/stretchr/testify/assert"
)

type fakeEmbedder struct {
	vector []float32
	err    error
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

// fakeStore returns canned results per collection. Collections missing from
// the map return an empty result, mirroring an empty partition.
type fakeStore struct {
	results map[string]*vectorstore.QueryResult
	errs    map[string]error
}

func (f *fakeStore) Upsert(ctx context.Context, collection string, docs []vectorstore.Document) error {
	return nil
}

func (f *fakeStore) Query(ctx context.Context, collection string, vector []float32, k int) (*vectorstore.QueryResult, error) {
	if err, ok := f.errs[collection]; ok {
		return nil, err
	}
	if res, ok := f.results[collection]; ok {
		return res, nil
	}
	return &vectorstore.QueryResult{}, nil
}

func (f *fakeStore) Count(ctx context.Context, collection string) (int64, error) {
	return 0, nil
}

func testLogger() *log.Logger {
	return log.New(os.Stdout, "", 0)
}

func resultWithDistances(docs []string, distances []float64) *vectorstore.QueryResult {
	return &vectorstore.QueryResult{Documents: docs, Distances: distances}
}

func TestRetrieveAllPartitionsEmpty(t *testing.T) {
	// Empty everywhere: zero confidence, escalation flag on.
	retriever := NewRetriever(&fakeStore{}, &fakeEmbedder{vector: []float32{1, 0}}, testLogger())
	st := NewState("twin-1", nil, "Should we expand to Europe?")

	retriever.Retrieve(context.Background(), st)

	assert.Equal(t, 0, st.Confidence.Style)
	assert.Equal(t, 0, st.Confidence.Context)
	assert.Equal(t, 0, st.Confidence.Decision)
	assert.Equal(t, 0, st.Confidence.Overall)
	assert.True(t, st.LowConfidence)
	assert.Empty(t, st.Retrieved.Style)
	assert.Empty(t, st.Retrieved.Context)
	assert.Empty(t, st.Retrieved.Decisions)
}

func TestRetrieveHighSimilarity(t *testing.T) {
	// Avg distance 0.05 in every partition maps to 95 everywhere.
	store := &fakeStore{results: map[string]*vectorstore.QueryResult{
		StyleCollection("twin-1"):    resultWithDistances([]string{"style doc"}, []float64{0.05}),
		ContextCollection("twin-1"):  resultWithDistances([]string{"ctx doc"}, []float64{0.05}),
		DecisionCollection("twin-1"): resultWithDistances([]string{"decision doc"}, []float64{0.05}),
	}}
	retriever := NewRetriever(store, &fakeEmbedder{vector: []float32{1, 0}}, testLogger())
	st := NewState("twin-1", nil, "question")

	retriever.Retrieve(context.Background(), st)

	assert.Equal(t, 95, st.Confidence.Style)
	assert.Equal(t, 95, st.Confidence.Context)
	assert.Equal(t, 95, st.Confidence.Decision)
	assert.Equal(t, 95, st.Confidence.Overall)
	assert.False(t, st.LowConfidence)
	assert.Equal(t, "style doc", st.Retrieved.Style)
}

func TestRetrieveUnscoredDefaults(t *testing.T) {
	// Documents without distances use the per-partition heuristic defaults.
	store := &fakeStore{results: map[string]*vectorstore.QueryResult{
		StyleCollection("twin-1"):    {Documents: []string{"a"}},
		ContextCollection("twin-1"):  {Documents: []string{"b"}},
		DecisionCollection("twin-1"): {Documents: []string{"c"}},
	}}
	retriever := NewRetriever(store, &fakeEmbedder{vector: []float32{1, 0}}, testLogger())
	st := NewState("twin-1", nil, "question")

	retriever.Retrieve(context.Background(), st)

	assert.Equal(t, 50, st.Confidence.Style)
	assert.Equal(t, 40, st.Confidence.Context)
	assert.Equal(t, 30, st.Confidence.Decision)
	assert.Equal(t, 40, st.Confidence.Overall)
	assert.False(t, st.LowConfidence)
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	// No query vector means every partition degrades to empty with score 0.
	store := &fakeStore{results: map[string]*vectorstore.QueryResult{
		StyleCollection("twin-1"): resultWithDistances([]string{"doc"}, []float64{0.1}),
	}}
	retriever := NewRetriever(store, &fakeEmbedder{err: errors.New("embeddings down")}, testLogger())
	st := NewState("twin-1", nil, "question")

	retriever.Retrieve(context.Background(), st)

	assert.Equal(t, 0, st.Confidence.Style)
	assert.Equal(t, 0, st.Confidence.Context)
	assert.Equal(t, 0, st.Confidence.Decision)
	assert.Equal(t, 0, st.Confidence.Overall)
	assert.True(t, st.LowConfidence)
}

func TestRetrievePartitionErrorDegradesThatPartitionOnly(t *testing.T) {
	store := &fakeStore{
		results: map[string]*vectorstore.QueryResult{
			ContextCollection("twin-1"):  resultWithDistances([]string{"ctx"}, []float64{0.2}),
			DecisionCollection("twin-1"): resultWithDistances([]string{"dec"}, []float64{0.2}),
		},
		errs: map[string]error{
			StyleCollection("twin-1"): errors.New("store unreachable"),
		},
	}
	retriever := NewRetriever(store, &fakeEmbedder{vector: []float32{1, 0}}, testLogger())
	st := NewState("twin-1", nil, "question")

	retriever.Retrieve(context.Background(), st)

	assert.Equal(t, 0, st.Confidence.Style)
	assert.Equal(t, 80, st.Confidence.Context)
	assert.Equal(t, 80, st.Confidence.Decision)
	assert.Equal(t, 53, st.Confidence.Overall) // round(160/3)
}

func TestConfidenceFromDistances(t *testing.T) {
	tests := []struct {
		name      string
		distances []float64
		want      int
	}{
		{name: "identical match", distances: []float64{0.0}, want: 100},
		{name: "high similarity", distances: []float64{0.05}, want: 95},
		{name: "mixed distances", distances: []float64{0.2, 0.4}, want: 70},
		{name: "distance at limit", distances: []float64{1.0}, want: 0},
		{name: "distance beyond limit clamps", distances: []float64{1.8}, want: 0},
		{name: "negative distance clamps", distances: []float64{-0.5}, want: 100},
		{name: "negative average clamps", distances: []float64{-0.8, 0.2}, want: 100},
		{name: "rounding up", distances: []float64{0.125}, want: 88},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := confidenceFromDistances(tt.distances)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		})
	}
}

func TestCollectionNamesLowercased(t *testing.T) {
	assert.Equal(t, "twin_style_abc-def", StyleCollection("ABC-DEF"))
	assert.Equal(t, "business_context_abc", ContextCollection("Abc"))
	assert.Equal(t, "decision_history_x1", DecisionCollection("X1"))
}
