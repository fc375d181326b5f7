package embedder

import (
	"context"
	"errors"
	"fmt"

	"github.com/scholex/semindex/pkg/types"
)

// Common errors
var (
	ErrEmptyText        = errors.New("text cannot be empty")
	ErrUnsupportedModel = errors.New("unsupported provider")
)

// Embedder turns a text string into a fixed-length float vector.
// Implementations make exactly one remote call per Embed: no caching,
// no retries. Callers own truncation of oversized input and any retry
// policy; deadlines travel on the context.
type Embedder interface {
	// Embed generates the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimension returns the embedding dimension for this provider.
	Dimension() int

	// Provider returns the provider name.
	Provider() string

	// Model returns the model name.
	Model() string

	// Close releases any resources held by the embedder.
	Close() error
}

// validateText rejects empty input before any network call is made.
func validateText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: %v", types.ErrInvalidArgument, ErrEmptyText)
	}
	return nil
}
