// ABOUTME: MCP tool handler implementations for the document Q&A server
// ABOUTME: Thin adapters from tool requests to engine operations
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Harshs0891/ChatWithDoc/internal/core"
)

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	engine *core.Engine
}

// ProcessDocuments handles the process_documents tool
func (h *Handlers) ProcessDocuments(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	paths := request.GetStringSlice("file_paths", nil)
	if len(paths) == 0 {
		return mcp.NewToolResultError("file_paths argument is required and must be a non-empty array of strings"), nil
	}

	ok, message := h.engine.ProcessDocuments(ctx, paths, sessionID)

	response := map[string]interface{}{
		"success":     ok,
		"message":     message,
		"session_id":  sessionID,
		"chunk_count": h.engine.GetDocumentCount(sessionID),
	}
	return textResult(response)
}

// GenerateAnswer handles the generate_answer tool
func (h *Handlers) GenerateAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	result := h.engine.GenerateAnswer(ctx, query, sessionID)
	return textResult(result)
}

// GenerateInsights handles the generate_insights tool
func (h *Handlers) GenerateInsights(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}
	count := request.GetInt("count", 3)
	if count <= 0 {
		return mcp.NewToolResultError("count must be positive"), nil
	}

	result := h.engine.GenerateSmartQuestions(ctx, sessionID, count)
	return textResult(result)
}

// SessionStatus handles the session_status tool
func (h *Handlers) SessionStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	response := map[string]interface{}{
		"session_id":      sessionID,
		"has_documents":   h.engine.HasDocuments(sessionID),
		"chunk_count":     h.engine.GetDocumentCount(sessionID),
		"active_sessions": h.engine.GetActiveSessionsCount(),
	}
	return textResult(response)
}

// ClearSession handles the clear_session tool
func (h *Handlers) ClearSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, err := request.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id argument is required and must be a string"), nil
	}

	cleared := h.engine.ClearSession(sessionID)

	response := map[string]interface{}{
		"session_id": sessionID,
		"cleared":    cleared,
	}
	return textResult(response)
}

// SystemStatus handles the system_status tool
func (h *Handlers) SystemStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	connected := h.engine.CheckOllamaConnection(ctx)
	embedReady := false
	if connected {
		embedReady = h.engine.CheckEmbeddingModel(ctx)
	}

	response := map[string]interface{}{
		"connected":             connected,
		"embedding_model_ready": embedReady,
		"active_sessions":       h.engine.GetActiveSessionsCount(),
	}
	return textResult(response)
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshaling response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
