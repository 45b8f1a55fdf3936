// Package config loads connector configuration from duckbridge.yaml,
// environment variables, and command-line flags, in ascending precedence.
package config

import (
	"sort"
	"strings"

	"github.com/duckbridge-labs/duckbridge/pkg/bridge"
	"github.com/duckbridge-labs/duckbridge/pkg/connstring"
	"github.com/duckbridge-labs/duckbridge/pkg/errs"
)

// Defaults applied before any other configuration source.
const (
	DefaultProfile = "default"
	DefaultOutput  = "auto"
	DefaultBridge  = "odbc"
)

// Profile is one named connection in the config file.
type Profile struct {
	// Database is a local path, ":memory:", or an md:<name> identifier.
	Database string `koanf:"database"`

	// MotherDuckToken authenticates md: databases. Supports ${VAR} expansion
	// so tokens can stay out of the file.
	MotherDuckToken string `koanf:"motherduck_token"`

	// ReadOnly forces the access mode when set.
	ReadOnly *bool `koanf:"read_only"`

	// SaaSMode restricts MotherDuck sessions to SaaS-safe operations.
	SaaSMode bool `koanf:"saas_mode"`

	// AttachMode selects how md: databases attach.
	AttachMode string `koanf:"attach_mode"`

	// Bridge names the execution engine binding ("odbc" when empty).
	Bridge string `koanf:"bridge"`

	// Options are free-form connector options.
	Options map[string]any `koanf:"options"`
}

// ToParams converts the profile into connection parameters.
func (p Profile) ToParams() connstring.Params {
	return connstring.Params{
		Database:        p.Database,
		MotherDuckToken: p.MotherDuckToken,
		ReadOnly:        p.ReadOnly,
		SaaSMode:        p.SaaSMode,
		AttachMode:      p.AttachMode,
		Options:         p.Options,
	}
}

// Config is the fully merged configuration.
type Config struct {
	// Profile selects the active entry in Profiles.
	Profile string `koanf:"profile"`

	// Verbose enables debug logging.
	Verbose bool `koanf:"verbose"`

	// Output is the rendering format: auto, table, json, csv, md, yaml.
	Output string `koanf:"output"`

	// Database and Bridge override the selected profile's fields when set
	// (usually from flags).
	Database string `koanf:"database"`
	Bridge   string `koanf:"bridge"`

	// Profiles holds the named connections from the config file.
	Profiles map[string]Profile `koanf:"profiles"`

	// ConfigFile is the path the file values came from, empty when none was
	// found.
	ConfigFile string `koanf:"-"`
}

// ProfileName returns the active profile name.
func (c *Config) ProfileName() string {
	if c.Profile != "" {
		return c.Profile
	}
	return DefaultProfile
}

// Selected resolves the active profile with top-level overrides applied. A
// missing "default" profile resolves to an empty one so the connector works
// without a config file; any other missing name is a configuration error
// naming the available profiles.
func (c *Config) Selected() (Profile, error) {
	name := c.ProfileName()
	p, ok := c.Profiles[name]
	if !ok && name != DefaultProfile {
		return Profile{}, errs.Newf(errs.KindConfiguration,
			"profile %q not found (available: %s)", name, strings.Join(c.profileNames(), ", "))
	}

	if c.Database != "" {
		p.Database = c.Database
	}
	if c.Bridge != "" {
		p.Bridge = c.Bridge
	}
	if p.Bridge == "" {
		p.Bridge = DefaultBridge
	}
	return p, nil
}

// Validate checks the merged configuration: the active profile must resolve
// and its bridge must be registered.
func (c *Config) Validate() error {
	p, err := c.Selected()
	if err != nil {
		return err
	}
	if !bridge.IsRegistered(p.Bridge) {
		return &bridge.UnknownBridgeError{Name: p.Bridge, Available: bridge.List()}
	}
	return nil
}

func (c *Config) profileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
