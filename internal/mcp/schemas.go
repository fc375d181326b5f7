package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

var contentTypeEnum = []string{"dataset", "casestudy", "methodmodule"}

// contentTypeProperty is the shared schema for the content_type parameter
func contentTypeProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Content collection to operate on",
		"enum":        contentTypeEnum,
	}
}

// searchContentTool returns the tool definition for search_content
func searchContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "search_content",
		Description: "Semantic search across embedded datasets, case studies, and method modules",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Natural language search query",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of results to return (1-50)",
					"default":     10,
					"minimum":     1,
					"maximum":     50,
				},
			},
			Required: []string{"query"},
		},
	}
}

// recommendContentTool returns the tool definition for recommend_content
func recommendContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "recommend_content",
		Description: "Recommend content similar to an already-embedded item ('more like this')",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content_type": contentTypeProperty(),
				"content_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the anchor item (must be embedded already)",
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of recommendations (1-50)",
					"default":     5,
					"minimum":     1,
					"maximum":     50,
				},
			},
			Required: []string{"content_type", "content_id"},
		},
	}
}

// askCatalogTool returns the tool definition for ask_catalog
func askCatalogTool() mcp.Tool {
	return mcp.Tool{
		Name:        "ask_catalog",
		Description: "Ask a question answered from the catalog's embedded content, with citations",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"message": map[string]interface{}{
					"type":        "string",
					"description": "The user's question",
				},
				"history": map[string]interface{}{
					"type":        "array",
					"description": "Prior conversation turns, oldest first",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"role": map[string]interface{}{
								"type": "string",
								"enum": []string{"user", "assistant"},
							},
							"content": map[string]interface{}{
								"type": "string",
							},
						},
						"required": []string{"role", "content"},
					},
				},
			},
			Required: []string{"message"},
		},
	}
}

// embedContentTool returns the tool definition for embed_content
func embedContentTool() mcp.Tool {
	return mcp.Tool{
		Name:        "embed_content",
		Description: "Embed (or re-embed) a single content item into the semantic index",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content_type": contentTypeProperty(),
				"content_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the source item",
				},
			},
			Required: []string{"content_type", "content_id"},
		},
	}
}

// embedAllTool returns the tool definition for embed_all
func embedAllTool() mcp.Tool {
	return mcp.Tool{
		Name:        "embed_all",
		Description: "Re-embed every item of one content type, pacing calls to the provider",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content_type": contentTypeProperty(),
			},
			Required: []string{"content_type"},
		},
	}
}

// deleteEmbeddingTool returns the tool definition for delete_embedding
func deleteEmbeddingTool() mcp.Tool {
	return mcp.Tool{
		Name:        "delete_embedding",
		Description: "Remove an item's embedding from the index (call when the source item is deleted)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"content_type": contentTypeProperty(),
				"content_id": map[string]interface{}{
					"type":        "string",
					"description": "Identifier of the source item",
				},
			},
			Required: []string{"content_type", "content_id"},
		},
	}
}

// getStatsTool returns the tool definition for get_stats
func getStatsTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_stats",
		Description: "Report embedding totals and coverage percentage per content type",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
