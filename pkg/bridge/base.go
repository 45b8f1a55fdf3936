package bridge

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"

	"github.com/duckbridge-labs/duckbridge/pkg/errs"
)

// BaseSQLBridge provides common database/sql behavior for bridges. Embed it
// in concrete implementations to get standard Close, Ping, Exec, and Query
// methods; Connect stays with the implementation because opening the handle
// is driver-specific.
type BaseSQLBridge struct {
	DB     *sql.DB
	Cfg    Config
	Logger zerolog.Logger
}

// Close closes the database connection.
func (b *BaseSQLBridge) Close() error {
	if b.DB == nil {
		return nil
	}
	b.Logger.Debug().Msg("closing connection")
	return b.DB.Close()
}

// Ping verifies the connection is alive.
func (b *BaseSQLBridge) Ping(ctx context.Context) error {
	if b.DB == nil {
		return errs.New(errs.KindConnectionFailed, "not connected")
	}
	if err := b.DB.PingContext(ctx); err != nil {
		return errs.Wrap(errs.KindConnectionFailed, "ping failed", err)
	}
	return nil
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLBridge) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return errs.New(errs.KindConnectionFailed, "not connected")
	}
	if _, err := b.DB.ExecContext(ctx, sqlStr); err != nil {
		return errs.Wrap(errs.KindQueryFailed, "execute statement", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLBridge) Query(ctx context.Context, sqlStr string) (*Rows, error) {
	if b.DB == nil {
		return nil, errs.New(errs.KindConnectionFailed, "not connected")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, errs.Wrap(errs.KindQueryFailed, "execute query", err)
	}
	return &Rows{Rows: rows}, nil
}

// IsConnected returns true if the connection is established.
func (b *BaseSQLBridge) IsConnected() bool {
	return b.DB != nil
}

// OpenAndPing opens a handle for the given driver and DSN and verifies it
// with a ping. The handle is closed again when the ping fails, so callers
// never hold a dead connection.
func OpenAndPing(ctx context.Context, driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, errs.Wrap(errs.KindConnectionFailed, "open "+driverName+" connection", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errs.Wrap(errs.KindConnectionFailed, "ping "+driverName+" data source", err)
	}
	return db, nil
}
