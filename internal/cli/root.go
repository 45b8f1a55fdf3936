// Package cli provides the command-line interface for duckbridge.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/duckbridge-labs/duckbridge/internal/cli/commands"
	"github.com/duckbridge-labs/duckbridge/internal/cli/output"
	"github.com/duckbridge-labs/duckbridge/internal/config"
	"github.com/duckbridge-labs/duckbridge/internal/logger"
	"github.com/duckbridge-labs/duckbridge/pkg/bridge"

	// Bridge registration.
	_ "github.com/duckbridge-labs/duckbridge/pkg/bridges/duckdb"
	_ "github.com/duckbridge-labs/duckbridge/pkg/bridges/odbc"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKey is used to store config in context.
type configKey struct{}

// rendererKey is used to store renderer in context.
type rendererKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "duckbridge",
		Short: "duckbridge - DuckDB and MotherDuck connection bridge",
		Long: `duckbridge builds, validates, and exercises ODBC connection strings for
DuckDB and MotherDuck databases.

It resolves connection profiles from configuration, composes the driver
capability overrides a host application needs, and can open the resulting
data source through the ODBC driver or the native DuckDB driver.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			level := "info"
			if cfg.Verbose {
				level = "debug"
			}
			log := logger.New(logger.Config{Level: level, Format: "console"})

			// Store config, logger, and renderer in context
			ctx := context.WithValue(cmd.Context(), configKey{}, cfg)
			ctx = config.WithLogger(ctx, log)
			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))
			ctx = context.WithValue(ctx, rendererKey{}, renderer)
			cmd.SetContext(ctx)

			// Print config file used (if verbose)
			if cfg.Verbose && cfg.ConfigFile != "" {
				fmt.Fprintf(os.Stderr, "Using config file: %s\n", cfg.ConfigFile)
			}

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
DuckDB and MotherDuck connection bridge
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./duckbridge.yaml)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "Connection profile to use")
	rootCmd.PersistentFlags().String("database", "", "Database path or md: URI (overrides the profile)")
	rootCmd.PersistentFlags().String("bridge", "", "Bridge used to open connections (overrides the profile)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|table|json|csv|md|yaml)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return output.ModeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for bridge flag
	_ = rootCmd.RegisterFlagCompletionFunc("bridge", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return bridge.List(), cobra.ShellCompDirectiveNoFileComp
	})

	// Register completion for profile flag
	_ = rootCmd.RegisterFlagCompletionFunc("profile", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		cfg, err := config.Load(cfgFile, nil)
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names := make([]string, 0, len(cfg.Profiles))
		for name := range cfg.Profiles {
			names = append(names, name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewDSNCommand())
	rootCmd.AddCommand(commands.NewCapabilitiesCommand())
	rootCmd.AddCommand(commands.NewOptionsCommand())
	rootCmd.AddCommand(commands.NewPingCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return c
	}
	// Return default config if none in context
	return &config.Config{
		Profile: config.DefaultProfile,
		Output:  config.DefaultOutput,
	}
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := ctx.Value(rendererKey{}).(*output.Renderer); ok {
		return r
	}
	// Return default renderer if none in context
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for duckbridge.

To load completions:

Bash:
  $ source <(duckbridge completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ duckbridge completion bash > /etc/bash_completion.d/duckbridge
  # macOS:
  $ duckbridge completion bash > $(brew --prefix)/etc/bash_completion.d/duckbridge

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ duckbridge completion zsh > "${fpath[1]}/_duckbridge"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ duckbridge completion fish | source

  # To load completions for each session, execute once:
  $ duckbridge completion fish > ~/.config/fish/completions/duckbridge.fish

PowerShell:
  PS> duckbridge completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> duckbridge completion powershell > duckbridge.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
