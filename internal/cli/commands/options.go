package commands

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/duckbridge-labs/duckbridge/pkg/errs"
	"github.com/duckbridge-labs/duckbridge/pkg/options"
)

// NewOptionsCommand creates the options command group.
func NewOptionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Inspect and validate driver options",
	}

	cmd.AddCommand(newOptionsListCommand())
	cmd.AddCommand(newOptionsValidateCommand())

	return cmd
}

func newOptionsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the supported driver options",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			schema := options.DuckDB()
			cols := []string{"name", "kind", "nullable", "default", "description"}
			results := make([]map[string]any, 0, len(schema))
			for _, e := range schema {
				results = append(results, map[string]any{
					"name":        e.Name,
					"kind":        e.Kind.String(),
					"nullable":    e.Nullable,
					"default":     e.Default,
					"description": e.Description,
				})
			}
			return cmdCtx.Renderer.Rows(cols, results)
		},
	}
}

func newOptionsValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [key=value ...]",
		Short: "Validate option assignments and print the normalized record",
		Long: `Validate option assignments against the DuckDB option schema.

Values are coerced from their literal form: true/false become logicals,
numeric literals become numbers, null clears an option, anything else
stays text. On success the normalized record with defaults applied is
printed.`,
		Example: `  duckbridge options validate threads=4 memory_limit=4GB
  duckbridge options validate access_mode=read_only -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmdCtx, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}

			opts := make(map[string]any, len(args))
			for _, arg := range args {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return errs.Newf(errs.KindInvalidOption, "malformed assignment %q: want key=value", arg)
				}
				opts[key] = parseOptionValue(value)
			}

			normalized, err := options.DuckDB().Validate(opts)
			if err != nil {
				return err
			}
			return cmdCtx.Renderer.Object(normalized)
		},
	}
}

// parseOptionValue coerces a literal to the value shape the option schema
// expects. Quoting on the command line keeps everything a string, so the
// coercion mirrors what a YAML or JSON decoder would have produced.
func parseOptionValue(s string) any {
	switch s {
	case "null", "NULL":
		return nil
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
