package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/duckbridge-labs/duckbridge/pkg/bridge"
)

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	var inputFile string

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run SQL through the selected bridge",
		Long: `Execute SQL against the selected profile through its bridge.

SQL is taken from the arguments, from --input, or from stdin when piped.
When invoked without input on a terminal, enters interactive REPL mode
with history and dot-commands.`,
		Example: `  # Execute SQL directly
  duckbridge query "SELECT 42 AS answer"

  # Pipe SQL in
  echo "SELECT current_database()" | duckbridge query

  # Read SQL from a file, render as CSV
  duckbridge query -i report.sql -o csv

  # Interactive mode
  duckbridge query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, inputFile)
		},
	}

	cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Read SQL from file")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, inputFile string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	// Determine SQL source
	var sqlQuery string

	switch {
	case len(args) > 0:
		sqlQuery = strings.Join(args, " ")
	case inputFile != "":
		content, err := os.ReadFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}
		sqlQuery = string(content)
	case !isTerminal(os.Stdin):
		// Read from stdin (piped input)
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		sqlQuery = string(content)
	default:
		// No input, TTY detected - enter REPL mode
		return runQueryREPL(cmd, cmdCtx)
	}

	br, cleanup, err := cmdCtx.OpenBridge(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	return executeAndRender(cmd.Context(), cmdCtx, br, sqlQuery)
}

func executeAndRender(ctx context.Context, cmdCtx *CommandContext, br bridge.Bridge, sqlQuery string) error {
	rows, err := br.Query(ctx, sqlQuery)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	cols, results, err := collectRows(rows.Rows)
	if err != nil {
		return err
	}
	return cmdCtx.Renderer.Rows(cols, results)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
