package config

import (
	"context"

	"github.com/rs/zerolog"
)

// currentConfig stores the loaded config for access by commands.
var currentConfig *Config

// GetCurrentConfig returns the most recently loaded configuration, or nil
// when Load has not run yet.
func GetCurrentConfig() *Config {
	return currentConfig
}

// ResetCurrentConfig clears the stored configuration. Used for testing.
func ResetCurrentConfig() {
	currentConfig = nil
}

// loggerKey is used to store the logger in context.
type loggerKey struct{}

// WithLogger stores a logger in the context.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context, falling back
// to a disabled logger.
func GetLogger(ctx context.Context) zerolog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return l
	}
	return zerolog.Nop()
}
