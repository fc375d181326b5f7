package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scholex/semindex/pkg/types"
)

// JSONCatalog is a Catalog backed by a catalog export file, for running
// the index next to a portal that dumps its collections as JSON. The
// portal's own database stays its own business.
type JSONCatalog struct {
	byType map[types.ContentType][]Item
}

// catalogFile is the on-disk export shape.
type catalogFile struct {
	Datasets      []exportedItem `json:"datasets"`
	CaseStudies   []exportedItem `json:"case_studies"`
	MethodModules []exportedItem `json:"method_modules"`
}

type exportedItem struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Category   string         `json:"category"`
	Summary    string         `json:"summary"`
	SourceInfo string         `json:"source_info"`
	Link       string         `json:"link"`
	Files      []exportedFile `json:"files"`
	Metadata   types.Metadata `json:"metadata"`
}

type exportedFile struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// LoadJSONCatalog reads a catalog export from disk.
func LoadJSONCatalog(path string) (*JSONCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog export: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog export: %w", err)
	}

	c := &JSONCatalog{byType: make(map[types.ContentType][]Item)}
	c.byType[types.ContentTypeDataset] = convertItems(file.Datasets, types.ContentTypeDataset)
	c.byType[types.ContentTypeCaseStudy] = convertItems(file.CaseStudies, types.ContentTypeCaseStudy)
	c.byType[types.ContentTypeMethodModule] = convertItems(file.MethodModules, types.ContentTypeMethodModule)
	return c, nil
}

func convertItems(exported []exportedItem, ct types.ContentType) []Item {
	items := make([]Item, len(exported))
	for i, e := range exported {
		files := make([]FileRef, len(e.Files))
		for j, f := range e.Files {
			files[j] = FileRef{Name: f.Name, Path: f.Path}
		}
		items[i] = Item{
			ID:          e.ID,
			ContentType: ct,
			Title:       e.Title,
			Category:    e.Category,
			Summary:     e.Summary,
			SourceInfo:  e.SourceInfo,
			Link:        e.Link,
			Files:       files,
			Metadata:    e.Metadata,
		}
	}
	return items
}

// GetItem returns a single item or types.ErrNotFound.
func (c *JSONCatalog) GetItem(ctx context.Context, contentType types.ContentType, id string) (*Item, error) {
	for i := range c.byType[contentType] {
		if c.byType[contentType][i].ID == id {
			item := c.byType[contentType][i]
			return &item, nil
		}
	}
	return nil, fmt.Errorf("%w: %s/%s", types.ErrNotFound, contentType, id)
}

// ListItems returns every item of one content type.
func (c *JSONCatalog) ListItems(ctx context.Context, contentType types.ContentType) ([]Item, error) {
	items := c.byType[contentType]
	out := make([]Item, len(items))
	copy(out, items)
	return out, nil
}

// CountItems returns how many items of one content type exist.
func (c *JSONCatalog) CountItems(ctx context.Context, contentType types.ContentType) (int, error) {
	return len(c.byType[contentType]), nil
}

// DirFileReader is a FileReader rooted at a directory; file paths from
// the catalog export are resolved relative to the root.
type DirFileReader struct {
	root string
}

// NewDirFileReader creates a DirFileReader.
func NewDirFileReader(root string) *DirFileReader {
	return &DirFileReader{root: root}
}

func (r *DirFileReader) Exists(ctx context.Context, path string) bool {
	info, err := os.Stat(filepath.Join(r.root, filepath.Clean(path)))
	return err == nil && !info.IsDir()
}

func (r *DirFileReader) ReadText(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(r.root, filepath.Clean(path)))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
