package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferRenderer(mode Mode) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	return NewRenderer(stdout, stderr, mode), stdout, stderr
}

func sampleRows() ([]string, []map[string]any) {
	cols := []string{"name", "threads"}
	results := []map[string]any{
		{"name": "work", "threads": 4},
		{"name": "scratch", "threads": nil},
	}
	return cols, results
}

func TestNewRendererNormalizesMode(t *testing.T) {
	tests := []struct {
		input Mode
		want  Mode
	}{
		{"", ModeAuto},
		{"auto", ModeAuto},
		{"table", ModeTable},
		{"json", ModeJSON},
		{"csv", ModeCSV},
		{"md", ModeMarkdown},
		{"markdown", ModeMarkdown},
		{"yaml", ModeYAML},
		{"bogus", ModeAuto},
	}

	for _, tt := range tests {
		r := NewRenderer(new(bytes.Buffer), new(bytes.Buffer), tt.input)
		assert.Equal(t, tt.want, r.Mode(), "mode %q", tt.input)
	}
}

func TestRowsTable(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeTable)
	cols, results := sampleRows()

	require.NoError(t, r.Rows(cols, results))

	out := stdout.String()
	assert.Contains(t, out, "work")
	assert.Contains(t, out, "scratch")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRowsTableEmpty(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeTable)

	require.NoError(t, r.Rows([]string{"name"}, nil))
	assert.Equal(t, "(0 rows)\n", stdout.String())
}

func TestRowsCSV(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeCSV)
	cols := []string{"name", "comment"}
	results := []map[string]any{
		{"name": "a", "comment": "plain"},
		{"name": "b", "comment": `has,comma and "quote"`},
	}

	require.NoError(t, r.Rows(cols, results))

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "name,comment", lines[0])
	assert.Equal(t, "a,plain", lines[1])
	assert.Equal(t, `b,"has,comma and ""quote"""`, lines[2])
}

func TestRowsMarkdown(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeMarkdown)
	cols, results := sampleRows()

	require.NoError(t, r.Rows(cols, results))

	out := stdout.String()
	assert.Contains(t, out, "| name | threads |")
	assert.Contains(t, out, "| --- | --- |")
	assert.Contains(t, out, "| work | 4 |")
	assert.Contains(t, out, "| scratch | NULL |")
}

func TestRowsJSON(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeJSON)
	cols, results := sampleRows()

	require.NoError(t, r.Rows(cols, results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "work", decoded[0]["name"])
	assert.Nil(t, decoded[1]["threads"])
}

func TestRowsYAML(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeYAML)
	cols, results := sampleRows()

	require.NoError(t, r.Rows(cols, results))

	out := stdout.String()
	assert.Contains(t, out, "name: work")
	assert.Contains(t, out, "threads: 4")
}

func TestRowsAutoFallsBackToCSV(t *testing.T) {
	// A bytes.Buffer is not a terminal, so auto picks the pipe format.
	r, stdout, _ := newBufferRenderer(ModeAuto)
	cols, results := sampleRows()

	require.NoError(t, r.Rows(cols, results))
	assert.True(t, strings.HasPrefix(stdout.String(), "name,threads\n"))
}

func TestObjectJSON(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeJSON)
	v := struct {
		Driver string `json:"driver"`
		Port   int    `json:"port"`
	}{Driver: "DuckDB Driver", Port: 0}

	require.NoError(t, r.Object(v))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &decoded))
	assert.Equal(t, "DuckDB Driver", decoded["driver"])
}

func TestObjectYAML(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeYAML)

	require.NoError(t, r.Object(map[string]string{"driver": "DuckDB Driver"}))
	assert.Contains(t, stdout.String(), "driver: DuckDB Driver")
}

func TestObjectTableFlattensNestedKeys(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeTable)
	v := map[string]any{
		"sql_capabilities": map[string]any{
			"LimitClauseKind":         "limit_offset",
			"SupportsStringLiterals":  true,
			"SQL_API_SQLBINDPARAMETER": false,
		},
	}

	require.NoError(t, r.Object(v))

	out := stdout.String()
	assert.Contains(t, out, "sql_capabilities.LimitClauseKind")
	assert.Contains(t, out, "limit_offset")
	assert.Contains(t, out, "sql_capabilities.SupportsStringLiterals")
	// Objects are not result sets, so no row-count footer.
	assert.NotContains(t, out, "rows)")
}

func TestObjectAutoFallsBackToJSON(t *testing.T) {
	r, stdout, _ := newBufferRenderer(ModeAuto)

	require.NoError(t, r.Object(map[string]string{"key": "value"}))
	assert.True(t, strings.HasPrefix(strings.TrimSpace(stdout.String()), "{"))
}

func TestWarnfGoesToStderr(t *testing.T) {
	r, stdout, stderr := newBufferRenderer(ModeTable)

	r.Warnf("history unavailable: %s", "permission denied")

	assert.Empty(t, stdout.String())
	assert.Equal(t, "history unavailable: permission denied\n", stderr.String())
}

func TestFlattenObjectSortsKeys(t *testing.T) {
	results, err := flattenObject(map[string]any{"b": 2, "a": 1, "c": map[string]any{"z": 26, "y": 25}})
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "a", results[0]["key"])
	assert.Equal(t, "b", results[1]["key"])
	assert.Equal(t, "c.y", results[2]["key"])
	assert.Equal(t, "c.z", results[3]["key"])
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    any
		expected string
	}{
		{nil, "NULL"},
		{"hello", "hello"},
		{[]byte("raw"), "raw"},
		{42, "42"},
		{3.14, "3.14"},
		{true, "true"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, formatValue(tt.input))
	}
}

func TestEscapeCSV(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"simple", "simple"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeCSV(tt.input))
	}
}
