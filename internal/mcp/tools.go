package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/scholex/semindex/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNotFound      = -32001 // Content not embedded yet
	ErrorCodeSearchFailed  = -32002 // Search pipeline failed
	ErrorCodeChatFailed    = -32003 // Chat pipeline failed
)

// handleSearchContent handles the search_content tool invocation
func (s *Server) handleSearchContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	query, ok := args["query"].(string)
	if !ok || query == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "query parameter is required and cannot be empty", map[string]interface{}{
			"param":  "query",
			"reason": "missing or empty",
		})
	}
	limit := getIntDefault(args, "limit", 10)

	results, err := s.searcher.Search(ctx, query, limit)
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"query":   query,
		"results": results,
		"count":   len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleRecommendContent handles the recommend_content tool invocation
func (s *Server) handleRecommendContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	contentType, contentID, mcpErr := contentKeyParams(args)
	if mcpErr != nil {
		return nil, mcpErr
	}
	limit := getIntDefault(args, "limit", 5)

	results, err := s.searcher.Recommend(ctx, contentType, contentID, limit)
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"anchor": map[string]interface{}{
			"content_type": contentType,
			"content_id":   contentID,
		},
		"results": results,
		"count":   len(results),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleAskCatalog handles the ask_catalog tool invocation
func (s *Server) handleAskCatalog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	message, ok := args["message"].(string)
	if !ok || message == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "message parameter is required and cannot be empty", map[string]interface{}{
			"param":  "message",
			"reason": "missing or empty",
		})
	}

	history, mcpErr := historyParam(args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	answer, err := s.chat.Chat(ctx, message, history)
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"answer":  answer.Answer,
		"sources": answer.Sources,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleEmbedContent handles the embed_content tool invocation
func (s *Server) handleEmbedContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	contentType, contentID, mcpErr := contentKeyParams(args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	if err := s.indexer.EmbedOne(ctx, contentType, contentID); err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"embedded":     true,
		"content_type": contentType,
		"content_id":   contentID,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleEmbedAll handles the embed_all tool invocation
func (s *Server) handleEmbedAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	contentType, mcpErr := contentTypeParam(args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	count, err := s.indexer.EmbedAll(ctx, contentType)
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"content_type": contentType,
		"embedded":     count,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleDeleteEmbedding handles the delete_embedding tool invocation
func (s *Server) handleDeleteEmbedding(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	contentType, contentID, mcpErr := contentKeyParams(args)
	if mcpErr != nil {
		return nil, mcpErr
	}

	if err := s.indexer.Delete(ctx, contentType, contentID); err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"deleted":      true,
		"content_type": contentType,
		"content_id":   contentID,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleGetStats handles the get_stats tool invocation
func (s *Server) handleGetStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := s.indexer.Stats(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	response := map[string]interface{}{
		"total_by_type":            stats.TotalByType,
		"coverage_percent_by_type": stats.CoverageByType,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// Helper functions

// contentTypeParam extracts and validates the content_type parameter
func contentTypeParam(args map[string]interface{}) (types.ContentType, error) {
	raw, ok := args["content_type"].(string)
	if !ok || raw == "" {
		return "", newMCPError(ErrorCodeInvalidParams, "content_type parameter is required", map[string]interface{}{
			"param":  "content_type",
			"reason": "missing or empty",
		})
	}
	contentType := types.ContentType(raw)
	if !contentType.Valid() {
		return "", newMCPError(ErrorCodeInvalidParams, "invalid content_type", map[string]interface{}{
			"param":   "content_type",
			"value":   raw,
			"allowed": contentTypeEnum,
		})
	}
	return contentType, nil
}

// contentKeyParams extracts the (content_type, content_id) natural key
func contentKeyParams(args map[string]interface{}) (types.ContentType, string, error) {
	contentType, err := contentTypeParam(args)
	if err != nil {
		return "", "", err
	}
	contentID, ok := args["content_id"].(string)
	if !ok || contentID == "" {
		return "", "", newMCPError(ErrorCodeInvalidParams, "content_id parameter is required", map[string]interface{}{
			"param":  "content_id",
			"reason": "missing or empty",
		})
	}
	return contentType, contentID, nil
}

// historyParam extracts the optional chat history
func historyParam(args map[string]interface{}) ([]types.Message, error) {
	raw, ok := args["history"].([]interface{})
	if !ok {
		return nil, nil
	}

	history := make([]types.Message, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid history entry", map[string]interface{}{
				"param": "history",
				"index": i,
			})
		}
		role, _ := m["role"].(string)
		content, _ := m["content"].(string)
		if role == "" || content == "" {
			return nil, newMCPError(ErrorCodeInvalidParams, "history entries need role and content", map[string]interface{}{
				"param": "history",
				"index": i,
			})
		}
		history = append(history, types.Message{Role: role, Content: content})
	}
	return history, nil
}

// mapError translates the core error taxonomy into MCP error codes
func mapError(err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return newMCPError(ErrorCodeInvalidParams, err.Error(), nil)
	case errors.Is(err, types.ErrNotFound):
		return newMCPError(ErrorCodeNotFound, err.Error(), nil)
	case errors.Is(err, types.ErrSearchFailed):
		return newMCPError(ErrorCodeSearchFailed, err.Error(), nil)
	case errors.Is(err, types.ErrChatFailed):
		return newMCPError(ErrorCodeChatFailed, err.Error(), nil)
	default:
		return newMCPError(ErrorCodeInternalError, err.Error(), nil)
	}
}

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}
