// ABOUTME: CLI command to ask a single question about documents
// ABOUTME: Indexes the given files, retrieves excerpts, and prints a grounded answer

package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var askFiles []string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about documents",
		Long: `Index the given documents and answer a question from their content only.

The answer cites the source documents and page numbers of the excerpts it
was grounded on. Questions the documents cannot answer get an explicit
refusal rather than a guess.

Examples:
  chatwithdoc ask --file report.pdf "What was Q3 revenue?"
  chatwithdoc ask --file report.pdf --file notes.txt "Who attended the review?"
  chatwithdoc ask --format json --file report.pdf "Summarize the key risks"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringSliceVar(&askFiles, "file", []string{}, "Document to index (repeatable)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	engine, _, err := newEngine()
	if err != nil {
		return err
	}

	sessionID := newSessionID()
	ctx := context.Background()

	ok, message := engine.ProcessDocuments(ctx, askFiles, sessionID)
	if !ok {
		return fmt.Errorf("%s", message)
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", message)
	}

	result := engine.GenerateAnswer(ctx, args[0], sessionID)

	if outputFormat == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	if !result.Success {
		return fmt.Errorf("%s", result.Message)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Answer)
	if result.HasAnswer && result.Sources != "" && !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nSources: %s\n", result.Sources)
		if verbose {
			for _, d := range result.SourceDetails {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s p.%d (similarity %.3f)\n", d.Source, d.Page, d.Similarity)
			}
		}
	}
	return nil
}
