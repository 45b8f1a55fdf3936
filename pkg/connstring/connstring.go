// Package connstring builds ODBC connection-string fields for DuckDB and
// MotherDuck databases.
//
// Build resolves user parameters into a fixed field set: driver name, database
// path (with MotherDuck token and mode parameters appended for md: paths),
// access mode, user agent, and the remaining validated options. ConnString
// renders the set in ODBC key=value; form with brace quoting where values need
// it. Everything is a pure function of its inputs; opening the connection is
// the bridge's job.
package connstring

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/duckbridge-labs/duckbridge/pkg/errs"
	"github.com/duckbridge-labs/duckbridge/pkg/options"
)

const (
	// DriverName is the registered name of the DuckDB ODBC driver.
	DriverName = "DuckDB Driver"

	// DefaultUserAgent identifies this client to the server. A configured
	// custom_user_agent is appended after a single space.
	DefaultUserAgent = "powerbi/v0.0(DuckDB)"

	// motherDuckPrefix marks a database path that opens a MotherDuck-hosted
	// database rather than a local file.
	motherDuckPrefix = "md:"
)

// Params are the user-supplied connection parameters.
type Params struct {
	// Database is a local path, ":memory:", or an md:<name> MotherDuck
	// identifier.
	Database string
	// MotherDuckToken authenticates md: databases. Required for those,
	// ignored otherwise.
	MotherDuckToken string
	// ReadOnly forces the access mode: true opens read_only, false
	// read_write, nil defers to the access_mode option.
	ReadOnly *bool
	// SaaSMode restricts the MotherDuck session to SaaS-safe operations.
	SaaSMode bool
	// AttachMode selects how md: databases attach ("single" when empty).
	AttachMode string
	// Options are free-form connector options validated against
	// options.DuckDB().
	Options map[string]any
}

// Field is one extra key/value pair of the connection string.
type Field struct {
	Name  string
	Value string
}

// Fields is the resolved connection-string field set.
type Fields struct {
	Driver     string
	Database   string
	AccessMode string
	UserAgent  string
	// Extra holds the remaining validated options in schema order.
	Extra []Field
}

// Build validates the parameters and resolves them into connection-string
// fields. No partial result is returned on error: options failing validation
// surface the errs.KindInvalidOption or errs.KindInvalidValue error as-is, and
// an md: database without a token fails with errs.KindConfiguration.
func (p Params) Build() (Fields, error) {
	schema := options.DuckDB()
	normalized, err := schema.Validate(p.Options)
	if err != nil {
		return Fields{}, err
	}

	accessMode := normalized["access_mode"].(string)
	if p.ReadOnly != nil {
		if *p.ReadOnly {
			accessMode = "read_only"
		} else {
			accessMode = "read_write"
		}
	}

	userAgent := DefaultUserAgent
	if custom, ok := normalized["custom_user_agent"].(string); ok {
		userAgent = DefaultUserAgent + " " + custom
	}

	database, err := resolveDatabase(p)
	if err != nil {
		return Fields{}, err
	}

	var extra []Field
	for _, name := range schema.Names() {
		if name == "access_mode" || name == "custom_user_agent" {
			continue
		}
		v := normalized[name]
		if v == nil {
			continue
		}
		extra = append(extra, Field{Name: name, Value: formatValue(v)})
	}

	return Fields{
		Driver:     DriverName,
		Database:   database,
		AccessMode: accessMode,
		UserAgent:  userAgent,
		Extra:      extra,
	}, nil
}

// resolveDatabase appends the MotherDuck token and mode parameters to md:
// paths and passes every other path through unchanged.
func resolveDatabase(p Params) (string, error) {
	if !strings.HasPrefix(p.Database, motherDuckPrefix) {
		return p.Database, nil
	}

	if p.MotherDuckToken == "" {
		return "", errs.Newf(errs.KindConfiguration,
			"connecting to %q requires a MotherDuck token; get one at https://app.motherduck.com/token-request?appName=ODBC",
			p.Database)
	}

	var b strings.Builder
	b.WriteString(p.Database)
	b.WriteString("?motherduck_token=")
	b.WriteString(p.MotherDuckToken)
	if p.SaaSMode {
		b.WriteString("&saas_mode=true")
	}
	attach := p.AttachMode
	if attach == "" {
		attach = "single"
	}
	b.WriteString("&attach_mode=")
	b.WriteString(attach)
	return b.String(), nil
}

// ConnString renders the fields as an ODBC connection string. The driver name
// is always braced; other values are braced only when they contain ';',
// braces, or leading or trailing space, with '}' doubled inside braces.
// A bare '=' needs no quoting because key and value split on the first '='.
func (f Fields) ConnString() string {
	parts := []string{
		"Driver={" + f.Driver + "}",
		"Database=" + quoteValue(f.Database),
		"access_mode=" + quoteValue(f.AccessMode),
		"custom_user_agent=" + quoteValue(f.UserAgent),
	}
	for _, field := range f.Extra {
		parts = append(parts, field.Name+"="+quoteValue(field.Value))
	}
	return strings.Join(parts, ";")
}

var tokenPattern = regexp.MustCompile(`(motherduck_token=)[^&]*`)

// Redacted returns a copy of the fields with the MotherDuck token masked,
// suitable for terminals and logs.
func (f Fields) Redacted() Fields {
	f.Database = tokenPattern.ReplaceAllString(f.Database, "${1}****")
	return f
}

func quoteValue(v string) string {
	if v == "" {
		return v
	}
	if !strings.ContainsAny(v, ";{}") && strings.TrimSpace(v) == v {
		return v
	}
	return "{" + strings.ReplaceAll(v, "}", "}}") + "}"
}

func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
