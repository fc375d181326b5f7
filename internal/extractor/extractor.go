// Package extractor builds the canonical text representation of a content
// item: its structured fields concatenated in a fixed order, followed by
// an optional long-form document pulled from the item's attached files.
// The output is deterministic for a given item snapshot; the exact string
// produced here is what gets embedded and stored.
package extractor

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/scholex/semindex/internal/source"
	"github.com/scholex/semindex/pkg/types"
)

const (
	// DocumentCharLimit caps the extracted long-form document to bound
	// provider cost and storage payload size. Truncation is silent.
	DocumentCharLimit = 2000

	readmeName  = "readme.md"
	mdExtension = ".md"
)

// Extractor assembles canonical text for embedding.
type Extractor struct {
	files  source.FileReader
	logger *slog.Logger
}

// New creates an extractor reading attached documents through the given
// file capability.
func New(files source.FileReader, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{files: files, logger: logger}
}

// CanonicalText builds the text to embed for one item. Structured fields
// come first in a fixed order; the long-form document section is appended
// when a suitable markdown file exists and is readable.
func (e *Extractor) CanonicalText(ctx context.Context, item *source.Item) string {
	var b strings.Builder

	writeField(&b, "Title", item.Title)
	writeField(&b, categoryLabel(item.ContentType), item.Category)
	writeField(&b, "Summary", item.Summary)
	writeField(&b, "Source", item.SourceInfo)
	writeField(&b, "Link", item.Link)

	if doc := e.extractDocument(ctx, item); doc != "" {
		b.WriteString("Document:\n")
		b.WriteString(doc)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// extractDocument selects and reads the item's long-form document.
// Selection: a file whose base name case-insensitively equals readme.md
// wins; otherwise the first .md file; otherwise nothing.
func (e *Extractor) extractDocument(ctx context.Context, item *source.Item) string {
	ref, ok := selectDocument(item.Files)
	if !ok {
		return ""
	}

	if e.files == nil || !e.files.Exists(ctx, ref.Path) {
		return ""
	}

	text, err := e.files.ReadText(ctx, ref.Path)
	if err != nil {
		// A missing or unreadable document degrades to field-only text
		// rather than failing the whole extraction.
		e.logger.Warn("document read failed, extracting fields only",
			"content_type", item.ContentType, "content_id", item.ID, "file", ref.Name, "err", err)
		return ""
	}

	return Sanitize(text)
}

// selectDocument applies the document selection policy to the file list.
func selectDocument(files []source.FileRef) (source.FileRef, bool) {
	var firstMarkdown *source.FileRef
	for i, f := range files {
		lower := strings.ToLower(f.Name)
		if lower == readmeName {
			return f, true
		}
		if firstMarkdown == nil && strings.HasSuffix(lower, mdExtension) {
			firstMarkdown = &files[i]
		}
	}
	if firstMarkdown != nil {
		return *firstMarkdown, true
	}
	return source.FileRef{}, false
}

// Sanitize strips NUL bytes (the persistence layer cannot store them)
// and hard-truncates to DocumentCharLimit. No truncation marker is
// added; the cut backs up to a rune boundary so the stored text stays
// valid UTF-8.
func Sanitize(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	if len(text) > DocumentCharLimit {
		cut := DocumentCharLimit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text
}

// writeField appends one "Label: value" line, skipping empty values so
// the canonical text stays stable across sparse items.
func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteString("\n")
}

// categoryLabel names the category field per content type, matching how
// the catalog presents it.
func categoryLabel(ct types.ContentType) string {
	if ct == types.ContentTypeDataset || ct == types.ContentTypeMethodModule {
		return "Discipline"
	}
	return "Category"
}
