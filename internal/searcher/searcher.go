package searcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/scholex/semindex/internal/embedder"
	"github.com/scholex/semindex/internal/rank"
	"github.com/scholex/semindex/internal/store"
	"github.com/scholex/semindex/pkg/types"
)

const (
	// SnippetCharLimit caps the caller-facing content snippet. This is a
	// display bound, distinct from the extractor's storage bound.
	SnippetCharLimit = 200

	// DefaultLimit is used when the caller passes a non-positive limit.
	DefaultLimit = 10
	// MaxLimit caps the result count per query.
	MaxLimit = 50
)

// Searcher serves similarity search and more-like-this recommendation.
// Every call re-reads the full candidate pool from the store; there is
// no in-process vector cache to invalidate.
type Searcher struct {
	store    store.Store
	embedder embedder.Embedder
	logger   *slog.Logger
}

// New creates a Searcher.
func New(st store.Store, emb embedder.Embedder, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		store:    st,
		embedder: emb,
		logger:   logger,
	}
}

// Search embeds the query, ranks all stored content against it, and
// returns the top results. An empty query fails before any provider call.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]types.SearchResult, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: query cannot be empty", types.ErrInvalidArgument)
	}
	limit = clampLimit(limit)

	queryVector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		s.logger.Error("query embedding failed", "err", err)
		return nil, fmt.Errorf("%w: embedding query: %v", types.ErrSearchFailed, err)
	}

	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading candidates: %v", types.ErrSearchFailed, err)
	}

	results := s.rankRows(queryVector, rows, limit, "")
	s.logger.Info("search done", "query_len", len(query), "candidates", len(rows), "results", len(results))
	return results, nil
}

// Recommend ranks all other content against the stored vector of the
// anchor item. The anchor must already be embedded; its own row is
// excluded by row id so a self-similarity of 1.0 can never appear.
func (s *Searcher) Recommend(ctx context.Context, contentType types.ContentType, contentID string, limit int) ([]types.SearchResult, error) {
	if !contentType.Valid() {
		return nil, fmt.Errorf("%w: content type %q", types.ErrInvalidArgument, contentType)
	}
	if contentID == "" {
		return nil, fmt.Errorf("%w: content id cannot be empty", types.ErrInvalidArgument)
	}
	limit = clampLimit(limit)

	anchor, err := s.store.Get(ctx, contentType, contentID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: loading anchor: %v", types.ErrSearchFailed, err)
	}

	rows, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: loading candidates: %v", types.ErrSearchFailed, err)
	}

	results := s.rankRows(anchor.Vector, rows, limit, anchor.ID)
	s.logger.Info("recommend done", "anchor", anchor.ID, "candidates", len(rows), "results", len(results))
	return results, nil
}

// rankRows runs the linear-scan ranking and shapes the winners.
func (s *Searcher) rankRows(query []float32, rows []*store.EmbeddedContent, limit int, excludeID string) []types.SearchResult {
	byID := make(map[string]*store.EmbeddedContent, len(rows))
	candidates := make([]rank.Candidate, 0, len(rows))
	for _, row := range rows {
		if excludeID != "" && row.ID == excludeID {
			continue
		}
		byID[row.ID] = row
		candidates = append(candidates, rank.Candidate{ID: row.ID, Vector: row.Vector})
	}

	ranked := rank.Rank(query, candidates, limit)

	results := make([]types.SearchResult, 0, len(ranked))
	for _, r := range ranked {
		row := byID[r.ID]
		results = append(results, types.SearchResult{
			ContentType: row.ContentType,
			ContentID:   row.ContentID,
			Title:       row.Title,
			Snippet:     snippet(row.Content),
			Content:     row.Content,
			Similarity:  r.Similarity,
			Metadata:    row.Metadata,
		})
	}
	return results
}

// snippet truncates stored content for display, with an ellipsis marker.
// The cut backs up to a rune boundary so the snippet stays valid UTF-8.
func snippet(content string) string {
	if len(content) <= SnippetCharLimit {
		return content
	}
	cut := SnippetCharLimit
	for cut > 0 && !utf8.RuneStart(content[cut]) {
		cut--
	}
	return content[:cut] + "..."
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
