package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/duckbridge-labs/duckbridge/pkg/errs"
)

// envPrefix namespaces the environment variables read by Load. Double
// underscores nest: DUCKBRIDGE_PROFILES__DEFAULT__DATABASE sets
// profiles.default.database.
const envPrefix = "DUCKBRIDGE_"

// findConfigFile finds the config file to use.
// Priority: explicit path > duckbridge.yaml > duckbridge.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range []string{"duckbridge.yaml", "duckbridge.yml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// Load merges configuration from defaults, the config file, environment
// variables, and flags. Precedence (highest to lowest): flags > env vars >
// config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"profile": DefaultProfile,
		"verbose": false,
		"output":  DefaultOutput,
	}, "."), nil); err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "load defaults", err)
	}

	// 2. Find and load config file
	path := findConfigFile(cfgFile)
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errs.Wrap(errs.KindConfiguration,
				fmt.Sprintf("read config file %s", path), err)
		}
	}

	// 3. Load environment variables (DUCKBRIDGE_ prefix)
	// Transform: DUCKBRIDGE_PROFILES__WORK__DATABASE -> profiles.work.database
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "load env vars", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errs.Wrap(errs.KindConfiguration, "load flags", err)
		}
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errs.Wrap(errs.KindConfiguration, "decode config", err)
	}
	cfg.ConfigFile = path

	// 6. Expand ${VAR} references in secret-bearing profile fields
	for name, p := range cfg.Profiles {
		p.Database = expandEnvVars(p.Database)
		p.MotherDuckToken = expandEnvVars(p.MotherDuckToken)
		cfg.Profiles[name] = p
	}

	currentConfig = &cfg
	return &cfg, nil
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars expands ${VAR} patterns in a string with environment variable
// values. Unset variables are left as-is.
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})
}
