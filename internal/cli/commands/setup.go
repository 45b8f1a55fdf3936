package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/duckbridge-labs/duckbridge/internal/cli/output"
	"github.com/duckbridge-labs/duckbridge/internal/config"
	"github.com/duckbridge-labs/duckbridge/pkg/bridge"
	"github.com/duckbridge-labs/duckbridge/pkg/odbcconfig"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Profile  config.Profile
	Logger   zerolog.Logger
	Renderer *output.Renderer
}

// NewCommandContext resolves the selected profile and assembles the
// dependencies a command needs.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg := getConfig()
	profile, err := cfg.Selected()
	if err != nil {
		return nil, err
	}

	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.Output)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{
		Cfg:      cfg,
		Profile:  profile,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// OpenBridge opens a connection to the selected profile through its
// bridge. The returned cleanup closes the bridge and must be called.
func (c *CommandContext) OpenBridge(ctx context.Context) (bridge.Bridge, func(), error) {
	fields, err := c.Profile.ToParams().Build()
	if err != nil {
		return nil, nil, err
	}

	br, err := bridge.New(c.Profile.Bridge, c.Logger)
	if err != nil {
		return nil, nil, err
	}

	cfg := bridge.Config{
		Fields:       fields,
		Capabilities: odbcconfig.Compose(odbcconfig.DuckDB()),
		Options:      c.Profile.Options,
	}
	if err := br.Connect(ctx, cfg); err != nil {
		return nil, nil, err
	}

	cleanup := func() { _ = br.Close() }
	return br, cleanup, nil
}

// getConfig returns the current configuration, falling back to defaults
// when the root command has not loaded one.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return &config.Config{
		Profile: config.DefaultProfile,
		Output:  config.DefaultOutput,
	}
}
