package bridge

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckbridge-labs/duckbridge/internal/testutil"
	"github.com/duckbridge-labs/duckbridge/pkg/errs"
)

func newMockBridge(t *testing.T, opts ...func(*sqlmock.Sqlmock)) (*BaseSQLBridge, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(
		sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual),
		sqlmock.MonitorPingsOption(true),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, opt := range opts {
		opt(&mock)
	}
	return &BaseSQLBridge{DB: db, Logger: testutil.NewTestLogger(t)}, mock
}

func TestBaseNotConnected(t *testing.T) {
	var b BaseSQLBridge
	ctx := context.Background()

	assert.True(t, errs.IsConnectionFailed(b.Ping(ctx)))
	assert.True(t, errs.IsConnectionFailed(b.Exec(ctx, "SELECT 1")))

	_, err := b.Query(ctx, "SELECT 1")
	assert.True(t, errs.IsConnectionFailed(err))

	assert.NoError(t, b.Close())
	assert.False(t, b.IsConnected())
}

func TestBasePing(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b, mock := newMockBridge(t)
		mock.ExpectPing()

		assert.NoError(t, b.Ping(context.Background()))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		b, mock := newMockBridge(t)
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))

		err := b.Ping(context.Background())
		require.Error(t, err)
		assert.True(t, errs.IsConnectionFailed(err))
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestBaseExec(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b, mock := newMockBridge(t)
		mock.ExpectExec("CREATE TABLE t (a INTEGER)").
			WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, b.Exec(context.Background(), "CREATE TABLE t (a INTEGER)"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		b, mock := newMockBridge(t)
		mock.ExpectExec("DROP TABLE missing").
			WillReturnError(errors.New("table missing does not exist"))

		err := b.Exec(context.Background(), "DROP TABLE missing")
		require.Error(t, err)
		assert.True(t, errs.IsQueryFailed(err))
	})
}

func TestBaseQuery(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		b, mock := newMockBridge(t)
		mock.ExpectQuery("SELECT a FROM t").
			WillReturnRows(sqlmock.NewRows([]string{"a"}).AddRow(1).AddRow(2))

		rows, err := b.Query(context.Background(), "SELECT a FROM t")
		require.NoError(t, err)
		defer func() { _ = rows.Close() }()

		var got []int
		for rows.Next() {
			var a int
			require.NoError(t, rows.Scan(&a))
			got = append(got, a)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []int{1, 2}, got)
	})

	t.Run("failure", func(t *testing.T) {
		b, mock := newMockBridge(t)
		mock.ExpectQuery("SELECT nope").
			WillReturnError(errors.New("syntax error"))

		_, err := b.Query(context.Background(), "SELECT nope")
		require.Error(t, err)
		assert.True(t, errs.IsQueryFailed(err))
	})
}

func TestBaseClose(t *testing.T) {
	b, mock := newMockBridge(t)
	mock.ExpectClose()

	require.NoError(t, b.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenAndPing(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.NewWithDSN("open_and_ping_ok",
			sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mock.ExpectPing()

		got, err := OpenAndPing(context.Background(), "sqlmock", "open_and_ping_ok")
		require.NoError(t, err)
		defer func() { _ = got.Close() }()

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ping failure closes the handle", func(t *testing.T) {
		db, mock, err := sqlmock.NewWithDSN("open_and_ping_fail",
			sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		defer func() { _ = db.Close() }()
		mock.ExpectPing().WillReturnError(errors.New("refused"))
		mock.ExpectClose()

		_, err = OpenAndPing(context.Background(), "sqlmock", "open_and_ping_fail")
		require.Error(t, err)
		assert.True(t, errs.IsConnectionFailed(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
