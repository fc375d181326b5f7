// Package source defines the read-only boundary to the catalog that owns
// the datasets, case studies, and method modules. The core never queries
// the relational layer or the filesystem directly; it consumes items and
// file contents through these interfaces.
package source

import (
	"context"

	"github.com/scholex/semindex/pkg/types"
)

// FileRef points at one file attached to a content item.
type FileRef struct {
	Name string // base name, e.g. "README.md"
	Path string // opaque path understood by the FileReader
}

// Item is a snapshot of one embeddable source entity. Fields mirror the
// catalog's structured attributes; the extractor concatenates them in a
// fixed order to build the canonical text.
type Item struct {
	ID          string
	ContentType types.ContentType
	Title       string
	Category    string // category or discipline depending on content type
	Summary     string
	SourceInfo  string // publication, provider, or authorship note
	Link        string
	Files       []FileRef
	Metadata    types.Metadata
}

// Catalog supplies content items from the owning system.
type Catalog interface {
	// GetItem returns a single item or types.ErrNotFound.
	GetItem(ctx context.Context, contentType types.ContentType, id string) (*Item, error)

	// ListItems returns every item of one content type.
	ListItems(ctx context.Context, contentType types.ContentType) ([]Item, error)

	// CountItems returns how many items of one content type exist.
	CountItems(ctx context.Context, contentType types.ContentType) (int, error)
}

// FileReader reads attached file contents on behalf of the extractor.
// It is a capability handed in by the catalog owner so the core stays
// testable without a real filesystem.
type FileReader interface {
	Exists(ctx context.Context, path string) bool
	ReadText(ctx context.Context, path string) (string, error)
}
