// ABOUTME: CLI command to generate a welcome message and suggested questions
// ABOUTME: Indexes documents and prints document-specific conversation starters

package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	insightFiles []string
	insightCount int
)

// NewInsightsCmd creates the insights command
func NewInsightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Generate a welcome message and suggested questions",
		Long: `Index the given documents and generate a short welcome message plus
suggested questions that the documents can actually answer.

Examples:
  chatwithdoc insights --file report.pdf
  chatwithdoc insights --file report.pdf --count 5
  chatwithdoc insights --format json --file report.pdf`,
		Args: cobra.NoArgs,
		RunE: runInsights,
	}

	cmd.Flags().StringSliceVar(&insightFiles, "file", []string{}, "Document to index (repeatable)")
	cmd.Flags().IntVar(&insightCount, "count", 3, "Number of suggested questions")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runInsights(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(insightCount, "count"); err != nil {
		return err
	}

	engine, _, err := newEngine()
	if err != nil {
		return err
	}

	sessionID := newSessionID()
	ctx := context.Background()

	ok, message := engine.ProcessDocuments(ctx, insightFiles, sessionID)
	if !ok {
		return fmt.Errorf("%s", message)
	}
	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", message)
	}

	result := engine.GenerateSmartQuestions(ctx, sessionID, insightCount)

	if outputFormat == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", data)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", result.Welcome)
	if len(result.Questions) > 0 {
		fmt.Fprintln(cmd.OutOrStdout())
		for i, q := range result.Questions {
			fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q)
		}
	}
	return nil
}
