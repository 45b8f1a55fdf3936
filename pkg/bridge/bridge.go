// Package bridge defines the contract between the connector and the engines
// that execute SQL on its behalf.
//
// This package holds the public interface and shared plumbing. Concrete
// bridge implementations live in pkg/bridges/ subdirectories and register
// themselves by name; the connector itself never speaks a wire protocol.
package bridge

import (
	"context"
	"database/sql"

	"github.com/duckbridge-labs/duckbridge/pkg/connstring"
	"github.com/duckbridge-labs/duckbridge/pkg/odbcconfig"
)

// Config carries everything a bridge needs to open a connection.
type Config struct {
	// Fields is the resolved connection-string field set.
	Fields connstring.Fields

	// Capabilities is the composed ODBC override record. The ODBC bridge
	// surfaces it for the host; other bridges may ignore it.
	Capabilities odbcconfig.Composed

	// Options is the raw options record the fields were built from. Bridges
	// that need typed settings re-validate and decode it themselves.
	Options map[string]any
}

// Bridge is the interface every execution engine binding implements.
type Bridge interface {
	// Connect opens the underlying handle and verifies it with a ping.
	Connect(ctx context.Context, cfg Config) error

	// Close releases the connection.
	Close() error

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// Exec runs a statement that returns no rows.
	Exec(ctx context.Context, sql string) error

	// Query runs a statement and returns its rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// Name returns the registered bridge name.
	Name() string
}

// Rows wraps sql.Rows to keep bridge callers off database/sql directly.
type Rows struct {
	*sql.Rows
}
