package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/duckbridge-labs/duckbridge/internal/cli/output"
	"github.com/duckbridge-labs/duckbridge/pkg/connstring"
)

// dsnBreakdown shapes the connection-string fields for structured output.
type dsnBreakdown struct {
	Driver     string            `json:"driver" yaml:"driver"`
	Database   string            `json:"database" yaml:"database"`
	AccessMode string            `json:"access_mode" yaml:"access_mode"`
	UserAgent  string            `json:"user_agent" yaml:"user_agent"`
	Extra      map[string]string `json:"extra,omitempty" yaml:"extra,omitempty"`
	ConnString string            `json:"connection_string" yaml:"connection_string"`
}

func newDSNBreakdown(fields connstring.Fields) dsnBreakdown {
	b := dsnBreakdown{
		Driver:     fields.Driver,
		Database:   fields.Database,
		AccessMode: fields.AccessMode,
		UserAgent:  fields.UserAgent,
		ConnString: fields.ConnString(),
	}
	if len(fields.Extra) > 0 {
		b.Extra = make(map[string]string, len(fields.Extra))
		for _, f := range fields.Extra {
			b.Extra[f.Name] = f.Value
		}
	}
	return b
}

// NewDSNCommand creates the dsn command.
func NewDSNCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "dsn",
		Short: "Build and print the ODBC connection string",
		Long: `Build the ODBC connection string for the selected profile.

The MotherDuck token is redacted unless --show-secrets is given. With a
structured output mode the individual fields are printed instead of the
assembled string.`,
		Example: `  # Connection string for the default profile
  duckbridge dsn

  # Connection string for a named profile, token included
  duckbridge dsn -p work --show-secrets

  # Individual fields as JSON
  duckbridge dsn -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			fields, err := cmdCtx.Profile.ToParams().Build()
			if err != nil {
				return err
			}
			if !showSecrets {
				fields = fields.Redacted()
			}

			if cmdCtx.Renderer.Mode() == output.ModeAuto {
				// The assembled string is the artifact people paste elsewhere.
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), fields.ConnString())
				return nil
			}
			return cmdCtx.Renderer.Object(newDSNBreakdown(fields))
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "Print the MotherDuck token unredacted")

	return cmd
}
