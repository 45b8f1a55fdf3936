// Package duckdb provides a native in-process DuckDB bridge. It exercises
// the same connection configuration as the ODBC path without requiring a
// driver manager, which makes it the natural choice for smoke tests.
package duckdb

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/duckbridge-labs/duckbridge/pkg/bridge"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

// Name is the registered bridge name.
const Name = "duckdb"

// Bridge implements the bridge.Bridge interface over the native driver.
type Bridge struct {
	bridge.BaseSQLBridge
}

// New creates a new native DuckDB bridge instance.
func New(logger zerolog.Logger) *Bridge {
	return &Bridge{BaseSQLBridge: bridge.BaseSQLBridge{Logger: logger}}
}

// Name returns the registered bridge name.
func (b *Bridge) Name() string {
	return Name
}

// Connect opens the database at the configured path. MotherDuck paths work
// here too: the token parameters built into the path pass through to the
// driver unchanged, and the remaining options join them as query parameters.
func (b *Bridge) Connect(ctx context.Context, cfg bridge.Config) error {
	s, err := decodeSettings(cfg.Options)
	if err != nil {
		return err
	}

	b.Logger.Debug().
		Str("bridge", Name).
		Str("database", cfg.Fields.Redacted().Database).
		Msg("opening duckdb database")

	db, err := bridge.OpenAndPing(ctx, "duckdb", dataSource(cfg.Fields, s))
	if err != nil {
		return err
	}

	b.DB = db
	b.Cfg = cfg
	return nil
}
