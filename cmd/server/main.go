// ABOUTME: Main entry point for the ChatWithDoc MCP server with stdio transport
// ABOUTME: Initializes the engine and registers all document Q&A tools
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/core"
	"github.com/Harshs0891/ChatWithDoc/internal/llm"
	"github.com/Harshs0891/ChatWithDoc/internal/mcp"
	"github.com/Harshs0891/ChatWithDoc/internal/store"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	client := llm.NewClient(cfg)
	sessions := store.NewSessionStore()
	engine := core.NewEngine(sessions, client, cfg)

	if !client.CheckConnection(context.Background()) {
		log.Printf("Warning: Ollama not reachable at %s - embeddings will degrade to fallback vectors", cfg.OllamaBaseURL)
	}

	// Create MCP server
	server := mcpserver.NewMCPServer(
		"ChatWithDoc",
		"0.1.0",
	)

	// Register MCP tools
	mcp.RegisterTools(server, engine)

	// Start server with stdio transport
	log.Println("ChatWithDoc MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
