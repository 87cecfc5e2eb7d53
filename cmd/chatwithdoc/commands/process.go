// ABOUTME: CLI command to index documents through the extraction pipeline
// ABOUTME: Reports per-session chunk counts without answering anything

package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// NewProcessCmd creates the process command
func NewProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process <files...>",
		Short: "Extract, chunk, and embed documents",
		Long: `Run documents through the full indexing pipeline and report the result.

Useful for checking that files extract cleanly and that the embedding
model is reachable before asking questions.

Examples:
  chatwithdoc process report.pdf
  chatwithdoc process report.pdf appendix.docx notes.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runProcess,
	}

	return cmd
}

func runProcess(cmd *cobra.Command, args []string) error {
	engine, _, err := newEngine()
	if err != nil {
		return err
	}

	sessionID := newSessionID()
	ok, message := engine.ProcessDocuments(context.Background(), args, sessionID)

	if outputFormat == "json" {
		out := map[string]interface{}{
			"success": ok,
			"message": message,
			"chunks":  engine.GetDocumentCount(sessionID),
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
	} else if !quiet {
		if ok {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\n", message)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✗ %s\n", message)
		}
	}

	if !ok {
		return fmt.Errorf("processing failed")
	}
	return nil
}
