// Package output renders command results in a configurable format.
//
// A Renderer is constructed once per command invocation. Row data and
// structured values go through separate paths because their natural
// machine-readable formats differ: rows degrade to CSV, single values
// to JSON.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// Mode selects how results are written.
type Mode string

// Supported output modes. ModeAuto resolves to ModeTable when stdout is
// a terminal, otherwise to ModeCSV for rows and ModeJSON for objects.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeJSON     Mode = "json"
	ModeCSV      Mode = "csv"
	ModeMarkdown Mode = "md"
	ModeYAML     Mode = "yaml"
)

// ModeNames lists the accepted --output values.
func ModeNames() []string {
	return []string{"auto", "table", "json", "csv", "md", "yaml"}
}

// Renderer writes command results to stdout in a single format.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	mode   Mode
}

// NewRenderer creates a renderer for the given mode. Empty and unknown
// modes fall back to ModeAuto.
func NewRenderer(stdout, stderr io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeTable, ModeJSON, ModeCSV, ModeMarkdown, ModeYAML:
	case "markdown":
		mode = ModeMarkdown
	default:
		mode = ModeAuto
	}
	return &Renderer{stdout: stdout, stderr: stderr, mode: mode}
}

// Mode returns the configured mode before auto resolution.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// Warnf writes a notice to stderr so it never corrupts piped output.
func (r *Renderer) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.stderr, format+"\n", args...)
}

// Rows renders a result set. Columns preserve query order; each result
// maps column name to value.
func (r *Renderer) Rows(cols []string, results []map[string]any) error {
	switch r.rowsMode() {
	case ModeJSON:
		return r.renderJSON(results)
	case ModeYAML:
		return r.renderYAML(results)
	case ModeCSV:
		return r.renderCSV(cols, results)
	case ModeMarkdown:
		return r.renderMarkdown(cols, results)
	default:
		return r.renderTable(cols, results, true)
	}
}

// Object renders a single structured value, such as a capability record
// or a connection-string breakdown. Tabular modes flatten the value into
// key/value rows with nested keys joined by dots.
func (r *Renderer) Object(v any) error {
	mode := r.objectMode()
	switch mode {
	case ModeJSON:
		return r.renderJSON(v)
	case ModeYAML:
		return r.renderYAML(v)
	}

	cols := []string{"key", "value"}
	results, err := flattenObject(v)
	if err != nil {
		return err
	}
	switch mode {
	case ModeCSV:
		return r.renderCSV(cols, results)
	case ModeMarkdown:
		return r.renderMarkdown(cols, results)
	default:
		return r.renderTable(cols, results, false)
	}
}

func (r *Renderer) rowsMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if isTerminal(r.stdout) {
		return ModeTable
	}
	return ModeCSV
}

func (r *Renderer) objectMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if isTerminal(r.stdout) {
		return ModeTable
	}
	return ModeJSON
}

func (r *Renderer) renderTable(cols []string, results []map[string]any, footer bool) error {
	if len(results) == 0 {
		if footer {
			_, _ = fmt.Fprintln(r.stdout, "(0 rows)")
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.stdout)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	for _, result := range results {
		row := make(table.Row, len(cols))
		for i, col := range cols {
			row[i] = formatValue(result[col])
		}
		t.AppendRow(row)
	}

	t.Render()
	if footer {
		_, _ = fmt.Fprintf(r.stdout, "(%d rows)\n", len(results))
	}
	return nil
}

func (r *Renderer) renderJSON(v any) error {
	enc := json.NewEncoder(r.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *Renderer) renderYAML(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.stdout.Write(data)
	return err
}

func (r *Renderer) renderCSV(cols []string, results []map[string]any) error {
	_, _ = fmt.Fprintln(r.stdout, strings.Join(cols, ","))

	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = escapeCSV(formatValue(result[col]))
		}
		_, _ = fmt.Fprintln(r.stdout, strings.Join(values, ","))
	}
	return nil
}

func (r *Renderer) renderMarkdown(cols []string, results []map[string]any) error {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(r.stdout, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(r.stdout, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(r.stdout, "| %s |\n", strings.Join(seps, " | "))

	for _, result := range results {
		values := make([]string, len(cols))
		for i, col := range cols {
			values[i] = formatValue(result[col])
		}
		_, _ = fmt.Fprintf(r.stdout, "| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

// flattenObject converts a structured value into key/value rows ordered
// by key. The value is round-tripped through JSON so struct tags decide
// the key names.
func flattenObject(v any) ([]map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, err
	}

	var results []map[string]any
	walkObject("", decoded, &results)
	return results, nil
}

func walkObject(prefix string, v any, results *[]map[string]any) {
	m, ok := v.(map[string]any)
	if !ok {
		*results = append(*results, map[string]any{"key": prefix, "value": v})
		return
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		walkObject(key, m[k], results)
	}
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
