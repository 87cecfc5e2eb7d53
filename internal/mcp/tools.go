// ABOUTME: MCP tool definitions and registration for the document Q&A server
// ABOUTME: Defines JSON schemas for the document, answer, and session tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Harshs0891/ChatWithDoc/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, engine *core.Engine) *Handlers {
	handlers := &Handlers{engine: engine}

	// 1. process_documents - Index documents into a session
	server.AddTool(mcp.Tool{
		Name:        "process_documents",
		Description: "Extract, chunk, and embed documents into a session's in-memory index. Supports pdf, docx, doc, and txt files. Re-processing a session replaces its previous index.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"file_paths": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "string"},
					"description": "Paths of the documents to index",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to index the documents into",
				},
			},
			Required: []string{"file_paths", "session_id"},
		},
	}, handlers.ProcessDocuments)

	// 2. generate_answer - Answer a question from the session's documents
	server.AddTool(mcp.Tool{
		Name:        "generate_answer",
		Description: "Answer a question strictly from the session's indexed documents, with source attribution. Returns an explicit refusal when the documents do not contain the answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Question to answer",
				},
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session whose documents to answer from",
				},
			},
			Required: []string{"query", "session_id"},
		},
	}, handlers.GenerateAnswer)

	// 3. generate_insights - Welcome message plus suggested questions
	server.AddTool(mcp.Tool{
		Name:        "generate_insights",
		Description: "Generate a welcome message and suggested questions that the session's documents can answer.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session whose documents to inspect",
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "Number of suggested questions (default: 3)",
					"default":     3,
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.GenerateInsights)

	// 4. session_status - Per-session and global state
	server.AddTool(mcp.Tool{
		Name:        "session_status",
		Description: "Report whether a session has indexed documents, its chunk count, and the number of active sessions.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to inspect",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.SessionStatus)

	// 5. clear_session - Drop a session's index
	server.AddTool(mcp.Tool{
		Name:        "clear_session",
		Description: "Remove a session's indexed documents. Clearing an unknown session is a no-op.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": map[string]interface{}{
					"type":        "string",
					"description": "Session to clear",
				},
			},
			Required: []string{"session_id"},
		},
	}, handlers.ClearSession)

	// 6. system_status - Ollama connectivity and model readiness
	server.AddTool(mcp.Tool{
		Name:        "system_status",
		Description: "Probe the configured Ollama instance and report connection and embedding model readiness.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.SystemStatus)

	return handlers
}
