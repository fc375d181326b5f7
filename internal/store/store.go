package store

import (
	"context"
	"time"

	"github.com/scholex/semindex/pkg/types"
)

// EmbeddedContent is one indexed item: the canonical text that was
// embedded, its vector, and denormalized display fields. The store
// exclusively owns these rows; all mutation goes through Upsert/Delete.
type EmbeddedContent struct {
	ID          string // opaque uuid, assigned on insert, immutable
	ContentType types.ContentType
	ContentID   string
	Title       string
	Content     string // exact string fed to the embedding provider
	Vector      []float32
	Metadata    types.Metadata
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Store is the durable mapping from (content type, content id) to
// embedded content. At most one row exists per natural key, enforced by
// upsert semantics.
type Store interface {
	// Upsert overwrites all mutable fields of the row for the natural key,
	// or inserts a new row with a fresh id. UpdatedAt advances either way.
	Upsert(ctx context.Context, row *EmbeddedContent) error

	// Get returns the row for the natural key or types.ErrNotFound.
	Get(ctx context.Context, contentType types.ContentType, contentID string) (*EmbeddedContent, error)

	// ListAll returns every row in arbitrary order. Callers must not rely
	// on ordering; it exists only as the candidate pool for ranking.
	ListAll(ctx context.Context) ([]*EmbeddedContent, error)

	// Delete removes zero or one row. Missing rows are not an error.
	Delete(ctx context.Context, contentType types.ContentType, contentID string) error

	// CountByType returns the number of rows for one content type.
	CountByType(ctx context.Context, contentType types.ContentType) (int, error)

	// Close releases the underlying database.
	Close() error
}
