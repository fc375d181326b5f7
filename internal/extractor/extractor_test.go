package extractor

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scholex/semindex/internal/source"
	"github.com/scholex/semindex/pkg/types"
)

// fakeFileReader serves file contents from a map keyed by path.
type fakeFileReader struct {
	files map[string]string
	reads []string
}

func (f *fakeFileReader) Exists(ctx context.Context, path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFileReader) ReadText(ctx context.Context, path string) (string, error) {
	f.reads = append(f.reads, path)
	return f.files[path], nil
}

func testItem(files ...source.FileRef) *source.Item {
	return &source.Item{
		ID:          "ds-1",
		ContentType: types.ContentTypeDataset,
		Title:       "Maize Trials 2024",
		Category:    "Agronomy",
		Summary:     "Plot-level yield measurements across three seasons.",
		SourceInfo:  "Field Station North",
		Link:        "https://example.org/ds-1",
		Files:       files,
	}
}

func TestCanonicalTextFieldOrder(t *testing.T) {
	ext := New(&fakeFileReader{}, nil)

	text := ext.CanonicalText(context.Background(), testItem())

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Title: Maize Trials 2024", lines[0])
	assert.Equal(t, "Discipline: Agronomy", lines[1])
	assert.Equal(t, "Summary: Plot-level yield measurements across three seasons.", lines[2])
	assert.Equal(t, "Source: Field Station North", lines[3])
	assert.Equal(t, "Link: https://example.org/ds-1", lines[4])
}

func TestCanonicalTextSkipsEmptyFields(t *testing.T) {
	ext := New(&fakeFileReader{}, nil)
	item := testItem()
	item.SourceInfo = ""
	item.Link = ""

	text := ext.CanonicalText(context.Background(), item)

	assert.NotContains(t, text, "Source:")
	assert.NotContains(t, text, "Link:")
}

func TestCanonicalTextDeterministic(t *testing.T) {
	reader := &fakeFileReader{files: map[string]string{
		"docs/readme.md": "A long form description.",
	}}
	ext := New(reader, nil)
	item := testItem(source.FileRef{Name: "README.md", Path: "docs/readme.md"})

	first := ext.CanonicalText(context.Background(), item)
	second := ext.CanonicalText(context.Background(), item)

	assert.Equal(t, first, second, "unchanged input must yield byte-identical text")
}

func TestDocumentSelectionPrefersReadmeCaseInsensitive(t *testing.T) {
	reader := &fakeFileReader{files: map[string]string{
		"files/notes.md":  "notes body",
		"files/ReAdMe.MD": "readme body",
	}}
	ext := New(reader, nil)
	item := testItem(
		source.FileRef{Name: "notes.md", Path: "files/notes.md"},
		source.FileRef{Name: "ReAdMe.MD", Path: "files/ReAdMe.MD"},
	)

	text := ext.CanonicalText(context.Background(), item)

	assert.Contains(t, text, "readme body")
	assert.NotContains(t, text, "notes body")
}

func TestDocumentSelectionFallsBackToFirstMarkdown(t *testing.T) {
	reader := &fakeFileReader{files: map[string]string{
		"files/guide.md":    "guide body",
		"files/appendix.md": "appendix body",
	}}
	ext := New(reader, nil)
	item := testItem(
		source.FileRef{Name: "data.csv", Path: "files/data.csv"},
		source.FileRef{Name: "guide.md", Path: "files/guide.md"},
		source.FileRef{Name: "appendix.md", Path: "files/appendix.md"},
	)

	text := ext.CanonicalText(context.Background(), item)

	assert.Contains(t, text, "guide body")
	assert.NotContains(t, text, "appendix body")
}

func TestDocumentSectionOmittedWithoutMarkdown(t *testing.T) {
	ext := New(&fakeFileReader{}, nil)
	item := testItem(source.FileRef{Name: "data.csv", Path: "files/data.csv"})

	text := ext.CanonicalText(context.Background(), item)

	assert.NotContains(t, text, "Document:")
}

func TestSanitizeStripsNULAndTruncates(t *testing.T) {
	body := strings.Repeat("a", 1000) + "\x00\x00" + strings.Repeat("b", 1500)
	require.Greater(t, len(body), DocumentCharLimit)

	got := Sanitize(body)

	assert.NotContains(t, got, "\x00")
	assert.LessOrEqual(t, len(got), DocumentCharLimit)
	assert.NotContains(t, got, "...", "truncation is silent, no marker")
}

func TestSanitizeTruncatesOnRuneBoundary(t *testing.T) {
	// 3-byte runes put the byte cap mid-rune
	body := strings.Repeat("世", 700)
	require.Greater(t, len(body), DocumentCharLimit)

	got := Sanitize(body)

	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), DocumentCharLimit)
	// nothing but whole runes survive the cut
	assert.Zero(t, len(got)%3)
}

func TestExtractedDocumentBounded(t *testing.T) {
	reader := &fakeFileReader{files: map[string]string{
		"files/readme.md": strings.Repeat("x\x00", 2500),
	}}
	ext := New(reader, nil)
	item := testItem(source.FileRef{Name: "readme.md", Path: "files/readme.md"})

	text := ext.CanonicalText(context.Background(), item)

	assert.NotContains(t, text, "\x00")
	// full canonical text = fields + document, document part capped
	assert.LessOrEqual(t, len(text), DocumentCharLimit+400)
}

func TestMissingDocumentDegradesToFields(t *testing.T) {
	// file listed in catalog but absent from storage
	ext := New(&fakeFileReader{}, nil)
	item := testItem(source.FileRef{Name: "readme.md", Path: "files/readme.md"})

	text := ext.CanonicalText(context.Background(), item)

	assert.Contains(t, text, "Title: Maize Trials 2024")
	assert.NotContains(t, text, "Document:")
}
