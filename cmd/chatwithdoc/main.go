// ABOUTME: Main entry point for the ChatWithDoc CLI
// ABOUTME: Sets up the Cobra root command and executes it

package main

import (
	"fmt"
	"os"

	"github.com/Harshs0891/ChatWithDoc/cmd/chatwithdoc/commands"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)

	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
