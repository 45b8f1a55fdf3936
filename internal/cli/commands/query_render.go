package commands

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/duckbridge-labs/duckbridge/pkg/bridge"
)

// collectRows scans a result set into column order plus per-row maps.
func collectRows(rows *sql.Rows) ([]string, []map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, nil, err
	}

	var results []map[string]any
	for rows.Next() {
		values := make([]any, len(cols))
		valuePtrs := make([]any, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, nil, err
		}

		row := make(map[string]any)
		for i, col := range cols {
			val := values[i]
			// Convert []byte to string for readability
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return cols, results, nil
}

// listTables renders the tables and views visible through the bridge.
func listTables(ctx context.Context, cmdCtx *CommandContext, br bridge.Bridge) error {
	query := `
		SELECT table_name, table_type
		FROM information_schema.tables
		WHERE table_schema NOT IN ('information_schema', 'pg_catalog')
		ORDER BY table_type, table_name
	`

	rows, err := br.Query(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	cols, results, err := collectRows(rows.Rows)
	if err != nil {
		return err
	}
	return cmdCtx.Renderer.Rows(cols, results)
}

// showSchema renders column information for a table or view.
func showSchema(ctx context.Context, cmdCtx *CommandContext, br bridge.Bridge, tableName string) error {
	escaped := strings.ReplaceAll(tableName, "'", "''")
	query := fmt.Sprintf(`
		SELECT column_name, data_type, is_nullable, column_default
		FROM information_schema.columns
		WHERE table_name = '%s'
		ORDER BY ordinal_position
	`, escaped)

	rows, err := br.Query(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	cols, results, err := collectRows(rows.Rows)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("table or view '%s' not found", tableName)
	}
	return cmdCtx.Renderer.Rows(cols, results)
}

// tableNames returns the table and view names visible through the bridge,
// for REPL completion.
func tableNames(ctx context.Context, br bridge.Bridge) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema NOT IN ('information_schema', 'pg_catalog')
		ORDER BY table_name
	`

	rows, err := br.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Rows.Next() {
		var name string
		if err := rows.Rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Rows.Err()
}
