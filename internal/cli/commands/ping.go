package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Open the selected profile and check the connection",
		Long: `Open the selected profile through its bridge and round-trip a ping.

The odbc bridge exercises the full connection string through the DuckDB
ODBC driver; the duckdb bridge opens the database natively.`,
		Example: `  duckbridge ping
  duckbridge ping -p work --bridge duckdb`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			br, cleanup, err := cmdCtx.OpenBridge(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			if err := br.Ping(cmd.Context()); err != nil {
				return err
			}
			elapsed := time.Since(start)

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", br.Name(), elapsed.Round(time.Millisecond))
			return nil
		},
	}
}
