// ABOUTME: CLI command to report Ollama connectivity and model readiness
// ABOUTME: Runs the liveness and embedding probes and prints the results

package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command
func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check Ollama connectivity and model readiness",
		Long: `Probe the configured Ollama instance and report whether the chat and
embedding models are usable.

The embedding probe performs one real embedding call, so a reachable
server with a missing model is reported as not ready.

Examples:
  chatwithdoc status
  chatwithdoc status --format json`,
		Args: cobra.NoArgs,
		RunE: runStatus,
	}

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	engine, cfg, err := newEngine()
	if err != nil {
		return err
	}

	ctx := context.Background()
	connected := engine.CheckOllamaConnection(ctx)
	embedReady := false
	if connected {
		embedReady = engine.CheckEmbeddingModel(ctx)
	}

	if outputFormat == "json" {
		out := map[string]interface{}{
			"ollama_url":            cfg.OllamaBaseURL,
			"chat_model":            cfg.ChatModel,
			"embedding_model":       cfg.EmbeddingModel,
			"connected":             connected,
			"embedding_model_ready": embedReady,
			"active_sessions":       engine.GetActiveSessionsCount(),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Ollama:          %s\n", cfg.OllamaBaseURL)
	fmt.Fprintf(cmd.OutOrStdout(), "Chat model:      %s\n", cfg.ChatModel)
	fmt.Fprintf(cmd.OutOrStdout(), "Embedding model: %s\n", cfg.EmbeddingModel)
	fmt.Fprintf(cmd.OutOrStdout(), "Connected:       %s\n", yesNo(connected))
	fmt.Fprintf(cmd.OutOrStdout(), "Embeddings:      %s\n", yesNo(embedReady))

	if !connected {
		return fmt.Errorf("ollama is not reachable at %s", cfg.OllamaBaseURL)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "ok"
	}
	return "unavailable"
}
