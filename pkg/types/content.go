package types

// ContentType identifies which catalog collection a piece of content
// belongs to. It is half of the natural key (ContentType, ContentID).
type ContentType string

const (
	ContentTypeDataset      ContentType = "dataset"
	ContentTypeCaseStudy    ContentType = "casestudy"
	ContentTypeMethodModule ContentType = "methodmodule"
)

// AllContentTypes lists every supported content type in a fixed order.
var AllContentTypes = []ContentType{
	ContentTypeDataset,
	ContentTypeCaseStudy,
	ContentTypeMethodModule,
}

// Valid reports whether the content type is one of the supported values.
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeDataset, ContentTypeCaseStudy, ContentTypeMethodModule:
		return true
	}
	return false
}

// Label returns a human-readable name for prompts and responses.
func (c ContentType) Label() string {
	switch c {
	case ContentTypeDataset:
		return "Dataset"
	case ContentTypeCaseStudy:
		return "Case Study"
	case ContentTypeMethodModule:
		return "Method Module"
	}
	return string(c)
}

// DatasetMeta holds denormalized dataset fields used for response shaping.
type DatasetMeta struct {
	Discipline string `json:"discipline,omitempty"`
	FileCount  int    `json:"file_count,omitempty"`
	Downloads  int    `json:"downloads,omitempty"`
	Featured   bool   `json:"featured,omitempty"`
}

// CaseStudyMeta holds denormalized case-study fields.
type CaseStudyMeta struct {
	Category  string `json:"category,omitempty"`
	Author    string `json:"author,omitempty"`
	Published bool   `json:"published,omitempty"`
}

// MethodModuleMeta holds denormalized method-module fields.
type MethodModuleMeta struct {
	Discipline string `json:"discipline,omitempty"`
	Level      string `json:"level,omitempty"`
	UnitCount  int    `json:"unit_count,omitempty"`
}

// Metadata is a tagged union keyed by content type. Exactly one variant
// is set for a given row. It never influences ranking.
type Metadata struct {
	Dataset      *DatasetMeta      `json:"dataset,omitempty"`
	CaseStudy    *CaseStudyMeta    `json:"casestudy,omitempty"`
	MethodModule *MethodModuleMeta `json:"methodmodule,omitempty"`
}

// SearchResult is the caller-facing shape of one ranked match.
// It is derived fresh on every query and never persisted.
type SearchResult struct {
	ContentType ContentType `json:"content_type"`
	ContentID   string      `json:"content_id"`
	Title       string      `json:"title"`
	Snippet     string      `json:"snippet"`
	// Content is the full canonical text behind the snippet. It feeds
	// chat prompt assembly and is never serialized to callers.
	Content    string   `json:"-"`
	Similarity float64  `json:"similarity"`
	Metadata   Metadata `json:"metadata"`
}

// Message is one turn of a chat conversation supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source is a citation backing a chat answer.
type Source struct {
	ContentType ContentType `json:"content_type"`
	ContentID   string      `json:"content_id"`
	Title       string      `json:"title"`
	Similarity  float64     `json:"similarity"`
}

// ChatAnswer is the result of one retrieval-augmented chat turn.
type ChatAnswer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// Stats reports embedding coverage per content type.
type Stats struct {
	TotalByType    map[ContentType]int     `json:"total_by_type"`
	CoverageByType map[ContentType]float64 `json:"coverage_percent_by_type"`
}
