// Package odbc provides the bridge to the DuckDB ODBC driver through the
// platform driver manager.
package odbc

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/duckbridge-labs/duckbridge/pkg/bridge"
	"github.com/duckbridge-labs/duckbridge/pkg/odbcconfig"

	_ "github.com/alexbrainman/odbc" // odbc driver
)

// Name is the registered bridge name.
const Name = "odbc"

// Bridge implements the bridge.Bridge interface over an ODBC connection.
type Bridge struct {
	bridge.BaseSQLBridge
}

// New creates a new ODBC bridge instance.
func New(logger zerolog.Logger) *Bridge {
	return &Bridge{BaseSQLBridge: bridge.BaseSQLBridge{Logger: logger}}
}

// Name returns the registered bridge name.
func (b *Bridge) Name() string {
	return Name
}

// Connect opens the connection described by the config's fields and verifies
// it with a ping. The composed capability record never changes how the handle
// is opened; it is carried for the host consuming the connection and logged
// at debug level. Pooling and timeouts stay with the driver manager.
func (b *Bridge) Connect(ctx context.Context, cfg bridge.Config) error {
	b.Logger.Debug().
		Str("bridge", Name).
		Str("conn", cfg.Fields.Redacted().ConnString()).
		Msg("opening odbc connection")
	logCapabilities(b.Logger, cfg.Capabilities)

	db, err := bridge.OpenAndPing(ctx, "odbc", cfg.Fields.ConnString())
	if err != nil {
		return err
	}

	b.DB = db
	b.Cfg = cfg
	return nil
}

func logCapabilities(logger zerolog.Logger, c odbcconfig.Composed) {
	logger.Debug().
		Interface("sql_capabilities", c.SQLCapabilities).
		Interface("sql_get_functions", c.SQLGetFunctions).
		Interface("sql_get_info", c.SQLGetInfo).
		Msg("composed capability overrides")
}
