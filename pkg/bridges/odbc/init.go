// Package odbc provides the bridge to the DuckDB ODBC driver.
//
// This file registers the bridge with the bridge registry. Import this
// package with a blank identifier to register it:
//
//	import _ "github.com/duckbridge-labs/duckbridge/pkg/bridges/odbc"
package odbc

import (
	"github.com/rs/zerolog"

	"github.com/duckbridge-labs/duckbridge/pkg/bridge"
)

func init() {
	bridge.Register(Name, func(logger zerolog.Logger) bridge.Bridge {
		return New(logger)
	})
}
