// Package mcp exposes the semantic index over the Model Context Protocol.
//
// Tools:
//   - search_content: semantic search with a ranked result list
//   - recommend_content: "more like this" for an embedded item
//   - ask_catalog: retrieval-augmented chat with citations
//   - embed_content / embed_all: single-item and batch embedding
//   - delete_embedding: remove an item from the index
//   - get_stats: embedding totals and coverage per content type
//
// The server is a thin adapter: parameter extraction, invoking the
// services, and translating the core error taxonomy into MCP error
// codes. No business logic lives here.
package mcp
