package searcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholex/semindex/internal/store"
	"github.com/scholex/semindex/pkg/types"
)

// fakeStore serves a fixed slice of rows.
type fakeStore struct {
	rows    []*store.EmbeddedContent
	listErr error
	getErr  error
}

func (f *fakeStore) Upsert(ctx context.Context, row *store.EmbeddedContent) error {
	f.rows = append(f.rows, row)
	return nil
}

func (f *fakeStore) Get(ctx context.Context, contentType types.ContentType, contentID string) (*store.EmbeddedContent, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, row := range f.rows {
		if row.ContentType == contentType && row.ContentID == contentID {
			return row, nil
		}
	}
	return nil, types.ErrNotFound
}

func (f *fakeStore) ListAll(ctx context.Context) ([]*store.EmbeddedContent, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.rows, nil
}

func (f *fakeStore) Delete(ctx context.Context, contentType types.ContentType, contentID string) error {
	return nil
}

func (f *fakeStore) CountByType(ctx context.Context, contentType types.ContentType) (int, error) {
	n := 0
	for _, row := range f.rows {
		if row.ContentType == contentType {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) Close() error { return nil }

// fakeEmbedder returns a fixed vector and counts calls.
type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.vector, nil
}

func (f *fakeEmbedder) Dimension() int   { return len(f.vector) }
func (f *fakeEmbedder) Provider() string { return "fake" }
func (f *fakeEmbedder) Model() string    { return "fake-model" }
func (f *fakeEmbedder) Close() error     { return nil }

func row(id, contentID string, ct types.ContentType, vec []float32) *store.EmbeddedContent {
	return &store.EmbeddedContent{
		ID:          id,
		ContentType: ct,
		ContentID:   contentID,
		Title:       "Title " + contentID,
		Content:     "Content for " + contentID,
		Vector:      vec,
	}
}

func TestSearchRanksByDescendingSimilarity(t *testing.T) {
	st := &fakeStore{rows: []*store.EmbeddedContent{
		row("r1", "a", types.ContentTypeDataset, []float32{0, 1}),
		row("r2", "b", types.ContentTypeCaseStudy, []float32{1, 0}),
		row("r3", "c", types.ContentTypeMethodModule, []float32{1, 1}),
	}}
	emb := &fakeEmbedder{vector: []float32{1, 0}}
	s := New(st, emb, nil)

	results, err := s.Search(context.Background(), "maize yields", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "b", results[0].ContentID)
	assert.Equal(t, "c", results[1].ContentID)
	assert.Equal(t, "a", results[2].ContentID)
	assert.Equal(t, 1, emb.calls)
}

func TestSearchEmptyQueryFailsBeforeProviderCall(t *testing.T) {
	emb := &fakeEmbedder{vector: []float32{1, 0}}
	s := New(&fakeStore{}, emb, nil)

	_, err := s.Search(context.Background(), "", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
	assert.Zero(t, emb.calls, "no embedding call for an invalid query")
}

func TestSearchEmbeddingFailureWrapsSearchFailed(t *testing.T) {
	emb := &fakeEmbedder{err: errors.New("provider down")}
	s := New(&fakeStore{}, emb, nil)

	_, err := s.Search(context.Background(), "soil moisture", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSearchFailed)
}

func TestSearchStoreFailureWrapsSearchFailed(t *testing.T) {
	st := &fakeStore{listErr: errors.New("db gone")}
	emb := &fakeEmbedder{vector: []float32{1, 0}}
	s := New(st, emb, nil)

	_, err := s.Search(context.Background(), "soil moisture", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSearchFailed)
}

func TestSearchEmptyStoreReturnsEmpty(t *testing.T) {
	s := New(&fakeStore{}, &fakeEmbedder{vector: []float32{1, 0}}, nil)

	results, err := s.Search(context.Background(), "anything", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearchSnippetTruncation(t *testing.T) {
	long := row("r1", "a", types.ContentTypeDataset, []float32{1, 0})
	long.Content = strings.Repeat("x", 500)
	short := row("r2", "b", types.ContentTypeDataset, []float32{1, 0})
	short.Content = "short body"

	st := &fakeStore{rows: []*store.EmbeddedContent{long, short}}
	s := New(st, &fakeEmbedder{vector: []float32{1, 0}}, nil)

	results, err := s.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Len(t, results[0].Snippet, SnippetCharLimit+3)
	assert.True(t, strings.HasSuffix(results[0].Snippet, "..."))
	assert.Equal(t, "short body", results[1].Snippet)
}

func TestSearchResultsCarryFullContent(t *testing.T) {
	long := row("r1", "a", types.ContentTypeDataset, []float32{1, 0})
	long.Content = strings.Repeat("x", 1200) + "TAIL-MARKER"

	st := &fakeStore{rows: []*store.EmbeddedContent{long}}
	s := New(st, &fakeEmbedder{vector: []float32{1, 0}}, nil)

	results, err := s.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	// the snippet is display-bounded; the canonical text rides along whole
	assert.Equal(t, long.Content, results[0].Content)
	assert.True(t, strings.HasSuffix(results[0].Content, "TAIL-MARKER"))
	assert.Less(t, len(results[0].Snippet), len(results[0].Content))
}

func TestSnippetTruncatesOnRuneBoundary(t *testing.T) {
	r := row("r1", "a", types.ContentTypeDataset, []float32{1, 0})
	// 3-byte runes; the byte cap lands mid-rune
	r.Content = strings.Repeat("世", 100)

	st := &fakeStore{rows: []*store.EmbeddedContent{r}}
	s := New(st, &fakeEmbedder{vector: []float32{1, 0}}, nil)

	results, err := s.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.True(t, utf8.ValidString(results[0].Snippet))
	assert.LessOrEqual(t, len(results[0].Snippet), SnippetCharLimit+3)
	assert.True(t, strings.HasSuffix(results[0].Snippet, "..."))
}

func TestSearchLimitClamping(t *testing.T) {
	rows := make([]*store.EmbeddedContent, 0, 60)
	for i := 0; i < 60; i++ {
		id := fmt.Sprintf("r%02d", i)
		rows = append(rows, row(id, "c"+id, types.ContentTypeDataset, []float32{1, 0}))
	}
	st := &fakeStore{rows: rows}
	s := New(st, &fakeEmbedder{vector: []float32{1, 0}}, nil)

	got, err := s.Search(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultLimit, "non-positive limit falls back to default")

	got, err = s.Search(context.Background(), "q", 1000)
	require.NoError(t, err)
	assert.Len(t, got, MaxLimit, "oversized limit is capped")
}

func TestRecommendExcludesAnchorRow(t *testing.T) {
	anchor := row("anchor-row", "ds-1", types.ContentTypeDataset, []float32{1, 0})
	st := &fakeStore{rows: []*store.EmbeddedContent{
		anchor,
		row("r2", "ds-2", types.ContentTypeDataset, []float32{1, 0.1}),
		row("r3", "cs-1", types.ContentTypeCaseStudy, []float32{0, 1}),
	}}
	s := New(st, &fakeEmbedder{vector: nil}, nil)

	results, err := s.Recommend(context.Background(), types.ContentTypeDataset, "ds-1", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	for _, r := range results {
		assert.False(t, r.ContentType == types.ContentTypeDataset && r.ContentID == "ds-1",
			"anchor must never recommend itself")
	}
	assert.Equal(t, "ds-2", results[0].ContentID)
}

func TestRecommendUsesStoredVectorNotProvider(t *testing.T) {
	anchor := row("anchor-row", "ds-1", types.ContentTypeDataset, []float32{1, 0})
	st := &fakeStore{rows: []*store.EmbeddedContent{
		anchor,
		row("r2", "ds-2", types.ContentTypeDataset, []float32{1, 0}),
	}}
	emb := &fakeEmbedder{vector: []float32{0, 1}}
	s := New(st, emb, nil)

	_, err := s.Recommend(context.Background(), types.ContentTypeDataset, "ds-1", 5)
	require.NoError(t, err)
	assert.Zero(t, emb.calls, "recommendation reuses the stored anchor vector")
}

func TestRecommendUnknownAnchor(t *testing.T) {
	s := New(&fakeStore{}, &fakeEmbedder{}, nil)

	_, err := s.Recommend(context.Background(), types.ContentTypeDataset, "missing", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestRecommendAnchorStoreFailureWrapsSearchFailed(t *testing.T) {
	st := &fakeStore{getErr: errors.New("db gone")}
	s := New(st, &fakeEmbedder{}, nil)

	_, err := s.Recommend(context.Background(), types.ContentTypeDataset, "ds-1", 5)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrSearchFailed)
	assert.NotErrorIs(t, err, types.ErrNotFound)
}

func TestRecommendValidatesArguments(t *testing.T) {
	s := New(&fakeStore{}, &fakeEmbedder{}, nil)

	_, err := s.Recommend(context.Background(), types.ContentType("journal"), "id", 5)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)

	_, err = s.Recommend(context.Background(), types.ContentTypeDataset, "", 5)
	assert.ErrorIs(t, err, types.ErrInvalidArgument)
}
