// ABOUTME: Shared helpers for CLI commands
// ABOUTME: Engine construction, session ids, and small output formatters

package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Harshs0891/ChatWithDoc/internal/config"
	"github.com/Harshs0891/ChatWithDoc/internal/core"
	"github.com/Harshs0891/ChatWithDoc/internal/llm"
	"github.com/Harshs0891/ChatWithDoc/internal/store"
)

// newEngine builds a fully wired engine for one CLI invocation. The vector
// store lives in memory, so each invocation starts from an empty session.
func newEngine() (*core.Engine, *config.Config, error) {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	client := llm.NewClient(cfg)
	sessions := store.NewSessionStore()
	return core.NewEngine(sessions, client, cfg), cfg, nil
}

// newSessionID returns a fresh session identifier
func newSessionID() string {
	return "cli_" + uuid.New().String()[:8]
}

// truncate shortens a string to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// validatePositiveInt returns an error if n is not positive
func validatePositiveInt(n int, name string) error {
	if n <= 0 {
		return fmt.Errorf("%s must be positive, got %d", name, n)
	}
	return nil
}
