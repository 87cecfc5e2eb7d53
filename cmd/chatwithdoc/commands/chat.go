// ABOUTME: Interactive chat session over a set of indexed documents
// ABOUTME: Reads questions from stdin and supports /insights, /clear, and /status

package commands

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewChatCmd creates the chat command
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat <files...>",
		Short: "Start an interactive Q&A session over documents",
		Long: `Index the given documents once and answer questions interactively.

Inside the session:
  /insights   suggest questions the documents can answer
  /clear      drop the indexed documents and end the session
  /status     show session and connection state
  /quit       exit

Examples:
  chatwithdoc chat report.pdf
  chatwithdoc chat report.pdf appendix.docx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runChat,
	}

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	engine, _, err := newEngine()
	if err != nil {
		return err
	}

	sessionID := newSessionID()
	ctx := context.Background()

	ok, message := engine.ProcessDocuments(ctx, args, sessionID)
	if !ok {
		return fmt.Errorf("%s", message)
	}

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintf(out, "%s\n", message)
		welcome := engine.GenerateSmartQuestions(ctx, sessionID, 3)
		if welcome.Welcome != "" {
			fmt.Fprintf(out, "\n%s\n", welcome.Welcome)
			for _, q := range welcome.Questions {
				fmt.Fprintf(out, "  - %s\n", q)
			}
		}
		fmt.Fprintln(out)
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch line {
		case "/quit", "/exit":
			return nil
		case "/clear":
			engine.ClearSession(sessionID)
			fmt.Fprintln(out, "Session cleared.")
			return nil
		case "/status":
			fmt.Fprintf(out, "Chunks indexed: %d\n", engine.GetDocumentCount(sessionID))
			fmt.Fprintf(out, "Ollama:         %s\n", yesNo(engine.CheckOllamaConnection(ctx)))
			continue
		case "/insights":
			insights := engine.GenerateSmartQuestions(ctx, sessionID, 3)
			for _, q := range insights.Questions {
				fmt.Fprintf(out, "  - %s\n", q)
			}
			continue
		}

		result := engine.GenerateAnswer(ctx, line, sessionID)
		if !result.Success {
			fmt.Fprintf(out, "Error: %s\n", result.Message)
			continue
		}
		fmt.Fprintf(out, "%s\n", result.Answer)
		if result.HasAnswer && result.Sources != "" && !quiet {
			fmt.Fprintf(out, "[%s]\n", result.Sources)
		}
	}

	return scanner.Err()
}
