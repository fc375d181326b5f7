package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/scholex/semindex/internal/embedder"
	"github.com/scholex/semindex/internal/extractor"
	"github.com/scholex/semindex/internal/source"
	"github.com/scholex/semindex/internal/store"
	"github.com/scholex/semindex/pkg/types"
)

const (
	// DefaultPacing is the delay between items in a batch run, sized to
	// respect the embedding provider's rate limit. The loop is
	// deliberately sequential; parallelizing it would reintroduce the
	// need for explicit rate limiting.
	DefaultPacing = 500 * time.Millisecond

	// pacingJitter spreads the delay ±20% so repeated batches don't
	// align with the provider's rate window.
	pacingJitter = 0.2
)

// Indexer runs the embedding pipeline: extract -> embed -> upsert.
type Indexer struct {
	catalog   source.Catalog
	extractor *extractor.Extractor
	embedder  embedder.Embedder
	store     store.Store
	pacing    time.Duration
	logger    *slog.Logger
}

// New creates an Indexer with default pacing.
func New(catalog source.Catalog, ext *extractor.Extractor, emb embedder.Embedder, st store.Store, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{
		catalog:   catalog,
		extractor: ext,
		embedder:  emb,
		store:     st,
		pacing:    DefaultPacing,
		logger:    logger,
	}
}

// SetPacing overrides the inter-item delay. Zero disables pacing;
// intended for tests.
func (ix *Indexer) SetPacing(d time.Duration) {
	ix.pacing = d
}

// EmbedOne embeds a single content item and upserts it.
func (ix *Indexer) EmbedOne(ctx context.Context, contentType types.ContentType, contentID string) error {
	if !contentType.Valid() {
		return fmt.Errorf("%w: content type %q", types.ErrInvalidArgument, contentType)
	}

	item, err := ix.catalog.GetItem(ctx, contentType, contentID)
	if err != nil {
		return err
	}

	return ix.embedItem(ctx, item)
}

// EmbedAll re-embeds every item of one content type, one at a time.
// Per-item failures are logged and skipped, never retried here; the
// returned count is the number of successful upserts, so the caller can
// re-run for the remainder.
func (ix *Indexer) EmbedAll(ctx context.Context, contentType types.ContentType) (int, error) {
	if !contentType.Valid() {
		return 0, fmt.Errorf("%w: content type %q", types.ErrInvalidArgument, contentType)
	}

	items, err := ix.catalog.ListItems(ctx, contentType)
	if err != nil {
		return 0, fmt.Errorf("listing %s items: %w", contentType, err)
	}

	succeeded := 0
	for i := range items {
		if err := ctx.Err(); err != nil {
			return succeeded, err
		}

		if err := ix.embedItem(ctx, &items[i]); err != nil {
			ix.logger.Warn("item embedding failed, continuing batch",
				"content_type", contentType, "content_id", items[i].ID, "err", err)
		} else {
			succeeded++
		}

		if i < len(items)-1 {
			ix.pause(ctx)
		}
	}

	ix.logger.Info("batch embedding done", "content_type", contentType,
		"total", len(items), "succeeded", succeeded)
	return succeeded, nil
}

// Delete removes the stored embedding for one item. Invoked by the
// catalog owner when the source entity goes away; missing rows are fine.
func (ix *Indexer) Delete(ctx context.Context, contentType types.ContentType, contentID string) error {
	if !contentType.Valid() {
		return fmt.Errorf("%w: content type %q", types.ErrInvalidArgument, contentType)
	}
	return ix.store.Delete(ctx, contentType, contentID)
}

// Stats reports totals and embedding coverage per content type. The
// three types are counted concurrently; each count pairs the store's
// row count with the catalog's item count.
func (ix *Indexer) Stats(ctx context.Context) (*types.Stats, error) {
	stats := &types.Stats{
		TotalByType:    make(map[types.ContentType]int, len(types.AllContentTypes)),
		CoverageByType: make(map[types.ContentType]float64, len(types.AllContentTypes)),
	}

	type typeCount struct {
		contentType types.ContentType
		embedded    int
		total       int
	}

	counts := make([]typeCount, len(types.AllContentTypes))
	g, gctx := errgroup.WithContext(ctx)
	for i, ct := range types.AllContentTypes {
		g.Go(func() error {
			embedded, err := ix.store.CountByType(gctx, ct)
			if err != nil {
				return fmt.Errorf("counting embedded %s: %w", ct, err)
			}
			total, err := ix.catalog.CountItems(gctx, ct)
			if err != nil {
				return fmt.Errorf("counting catalog %s: %w", ct, err)
			}
			counts[i] = typeCount{contentType: ct, embedded: embedded, total: total}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, c := range counts {
		stats.TotalByType[c.contentType] = c.embedded
		if c.total > 0 {
			stats.CoverageByType[c.contentType] = 100 * float64(c.embedded) / float64(c.total)
		} else {
			stats.CoverageByType[c.contentType] = 0
		}
	}
	return stats, nil
}

// embedItem runs extract -> embed -> upsert for one item.
func (ix *Indexer) embedItem(ctx context.Context, item *source.Item) error {
	text := ix.extractor.CanonicalText(ctx, item)

	vector, err := ix.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("embedding %s/%s: %w", item.ContentType, item.ID, err)
	}

	row := &store.EmbeddedContent{
		ContentType: item.ContentType,
		ContentID:   item.ID,
		Title:       item.Title,
		Content:     text,
		Vector:      vector,
		Metadata:    item.Metadata,
	}
	if err := ix.store.Upsert(ctx, row); err != nil {
		return fmt.Errorf("storing %s/%s: %w", item.ContentType, item.ID, err)
	}
	return nil
}

// pause sleeps for the jittered pacing interval or until ctx is done.
func (ix *Indexer) pause(ctx context.Context) {
	if ix.pacing <= 0 {
		return
	}

	jitter := 1 + pacingJitter*(2*rand.Float64()-1)
	delay := time.Duration(float64(ix.pacing) * jitter)

	select {
	case <-ctx.Done():
	case <-time.After(delay):
	}
}
