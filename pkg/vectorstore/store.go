package vectorstore

import (
	"context"
	"errors"
	"fmt"
)

// Document is one entry in a collection. Upsert is idempotent by ID.
type Document struct {
	ID       string
	Content  string
	Vector   []float32
	Metadata map[string]interface{}
}

// QueryResult holds nearest-neighbor matches for one query.
// Distances may be empty when the backend cannot score results; callers
// must treat that as "have data but can't score it".
type QueryResult struct {
	Documents []string
	Distances []float64
}

// Store is a per-collection vector database. A collection maps to one
// partition of one twin/persona (style, business context, decision history,
// or corpus); no two logical owners share a collection.
type Store interface {
	Upsert(ctx context.Context, collection string, docs []Document) error
	Query(ctx context.Context, collection string, vector []float32, k int) (*QueryResult, error)
	Count(ctx context.Context, collection string) (int64, error)
}

// RetrievalError indicates the vector store was unreachable or the query
// failed. Callers convert it to an empty retrieval with zero confidence.
type RetrievalError struct {
	Collection string
	Err        error
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("vector retrieval failed (collection %s): %v", e.Collection, e.Err)
}

func (e *RetrievalError) Unwrap() error {
	return e.Err
}

func NewRetrievalError(collection string, err error) *RetrievalError {
	return &RetrievalError{Collection: collection, Err: err}
}

func IsRetrievalError(err error) bool {
	var re *RetrievalError
	return errors.As(err, &re)
}
