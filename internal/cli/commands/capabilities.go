package commands

import (
	"github.com/spf13/cobra"

	"github.com/duckbridge-labs/duckbridge/pkg/odbcconfig"
)

// NewCapabilitiesCommand creates the capabilities command.
func NewCapabilitiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "capabilities",
		Short: "Print the composed ODBC capability overrides",
		Long: `Print the capability overrides handed to an ODBC host for the DuckDB
driver: SQL feature support, scalar conversion function flags, and
SQLGetInfo conformance answers.`,
		Example: `  duckbridge capabilities
  duckbridge capabilities -o yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Object(odbcconfig.Compose(odbcconfig.DuckDB()))
		},
	}
}
