// ABOUTME: Root command for the ChatWithDoc CLI
// ABOUTME: Wires global flags and registers all subcommands

package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

// NewRootCmd creates the root command with all subcommands registered
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chatwithdoc",
		Short: "Ask questions about your documents, answered only from their content",
		Long: `ChatWithDoc - grounded document question answering

Indexes PDF, DOCX, DOC, and TXT files into an in-memory vector store and
answers questions strictly from the retrieved excerpts, via a local Ollama
instance. Nothing is answered from outside knowledge, and nothing is
persisted between runs.

Examples:
  chatwithdoc process report.pdf notes.txt
  chatwithdoc ask --file report.pdf "What was Q3 revenue?"
  chatwithdoc insights --file report.pdf
  chatwithdoc chat report.pdf notes.txt
  chatwithdoc status`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "Output format (text|json)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	rootCmd.AddCommand(NewProcessCmd())
	rootCmd.AddCommand(NewAskCmd())
	rootCmd.AddCommand(NewInsightsCmd())
	rootCmd.AddCommand(NewChatCmd())
	rootCmd.AddCommand(NewStatusCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
