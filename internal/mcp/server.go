package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/scholex/semindex/internal/chat"
	"github.com/scholex/semindex/internal/indexer"
	"github.com/scholex/semindex/internal/searcher"
	"github.com/scholex/semindex/internal/store"
)

const (
	// ServerName is the MCP server name
	ServerName = "semindex"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with application dependencies
type Server struct {
	mcp      *server.MCPServer
	store    store.Store
	searcher *searcher.Searcher
	indexer  *indexer.Indexer
	chat     *chat.Orchestrator
}

// NewServer creates a new MCP server instance from already-constructed
// services. Dependency construction (store, providers, config) happens
// in main so a failed credential resolution surfaces before any tool is
// registered.
func NewServer(st store.Store, srch *searcher.Searcher, ix *indexer.Indexer, orch *chat.Orchestrator) *Server {
	s := &Server{
		mcp:      server.NewMCPServer(ServerName, ServerVersion),
		store:    st,
		searcher: srch,
		indexer:  ix,
		chat:     orch,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	defer func() { _ = s.store.Close() }()
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchContentTool(), s.handleSearchContent)
	s.mcp.AddTool(recommendContentTool(), s.handleRecommendContent)
	s.mcp.AddTool(askCatalogTool(), s.handleAskCatalog)
	s.mcp.AddTool(embedContentTool(), s.handleEmbedContent)
	s.mcp.AddTool(embedAllTool(), s.handleEmbedAll)
	s.mcp.AddTool(deleteEmbeddingTool(), s.handleDeleteEmbedding)
	s.mcp.AddTool(getStatsTool(), s.handleGetStats)
}
