package embedding

import (
	"context"
	"errors"
	"fmt"
)

// Task types passed to providers that distinguish between indexing and querying.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Provider defines the interface for generating text embeddings
type Provider interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}

// EmbeddingError indicates the embedding call failed. Callers treat it as
// "no retrieval possible" rather than surfacing it.
type EmbeddingError struct {
	Provider string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding failed (%s): %v", e.Provider, e.Err)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Err
}

func NewEmbeddingError(provider string, err error) *EmbeddingError {
	return &EmbeddingError{Provider: provider, Err: err}
}

func IsEmbeddingError(err error) bool {
	var ee *EmbeddingError
	return errors.As(err, &ee)
}
