// Package odbcconfig composes the capability and metadata record handed to a
// generic ODBC host alongside a connection string.
//
// ODBC hosts probe a driver through SQLGetFunctions and SQLGetInfo and adjust
// the SQL they generate to what the driver claims to support. Drivers such as
// DuckDB's report some of those capabilities wrong or not at all, so the
// record built here overrides the probed values: which literals the host may
// inline, whether parameters can be bound, how LIMIT is spelled, CAST versus
// CONVERT, and the claimed SQL-92 conformance level.
//
// Compose is a pure function from a fixed set of feature flags to the three
// override sections. Nothing here talks to a driver.
package odbcconfig

import "fmt"

// Section is one override section of the composed record, keyed by the names
// the ODBC host understands.
type Section map[string]any

// Merge returns a new section holding the receiver's entries overwritten by
// the overlay's. Neither input is modified; a nil receiver is an empty
// section.
func (s Section) Merge(overlay Section) Section {
	out := make(Section, len(s)+len(overlay))
	for k, v := range s {
		out[k] = v
	}
	for k, v := range overlay {
		out[k] = v
	}
	return out
}

// Composed is the full override record: the host-level SQL capabilities plus
// the SQLGetFunctions and SQLGetInfo answers to patch.
type Composed struct {
	SQLCapabilities Section `json:"sql_capabilities" yaml:"sql_capabilities"`
	SQLGetFunctions Section `json:"sql_get_functions" yaml:"sql_get_functions"`
	SQLGetInfo      Section `json:"sql_get_info" yaml:"sql_get_info"`
}

// LimitClauseKind states how the driver spells row limiting.
type LimitClauseKind int

const (
	// LimitNone disables limit pushdown.
	LimitNone LimitClauseKind = iota
	// LimitTop selects TOP n.
	LimitTop
	// LimitOffset selects LIMIT n OFFSET m.
	LimitOffset
	// LimitAnsiSQL2008 selects OFFSET m ROWS FETCH FIRST n ROWS ONLY.
	LimitAnsiSQL2008
)

func (k LimitClauseKind) String() string {
	switch k {
	case LimitNone:
		return "none"
	case LimitTop:
		return "top"
	case LimitOffset:
		return "limit_offset"
	case LimitAnsiSQL2008:
		return "ansi_sql_2008"
	default:
		return fmt.Sprintf("LimitClauseKind(%d)", int(k))
	}
}

// SQLConformance is an ODBC SQL_SC_* conformance level as reported through
// SQLGetInfo(SQL_SQL_CONFORMANCE).
type SQLConformance uint32

const (
	SQL92Entry          SQLConformance = 1
	FIPS127Transitional SQLConformance = 2
	SQL92Intermediate   SQLConformance = 4
	SQL92Full           SQLConformance = 8
)

func (c SQLConformance) String() string {
	switch c {
	case SQL92Entry:
		return "SQL_SC_SQL92_ENTRY"
	case FIPS127Transitional:
		return "SQL_SC_FIPS127_2_TRANSITIONAL"
	case SQL92Intermediate:
		return "SQL_SC_SQL92_INTERMEDIATE"
	case SQL92Full:
		return "SQL_SC_SQL92_FULL"
	default:
		return fmt.Sprintf("SQLConformance(%d)", uint32(c))
	}
}

// Keys written into the SQLCapabilities section.
const (
	SupportsNumericLiterals       = "SupportsNumericLiterals"
	SupportsStringLiterals        = "SupportsStringLiterals"
	SupportsOdbcDateLiterals      = "SupportsOdbcDateLiterals"
	SupportsOdbcTimeLiterals      = "SupportsOdbcTimeLiterals"
	SupportsOdbcTimestampLiterals = "SupportsOdbcTimestampLiterals"
	StringLiteralEscapeCharacters = "StringLiteralEscapeCharacters"
	LimitClauseKindKey            = "LimitClauseKind"
)

// Keys written into the SQLGetFunctions and SQLGetInfo sections, named after
// the ODBC constants they patch.
const (
	SQLAPIBindParameter = "SQL_API_SQLBINDPARAMETER"
	SQLConvertFunctions = "SQL_CONVERT_FUNCTIONS"
	SQLSQLConformance   = "SQL_SQL_CONFORMANCE"
)

// SQL_CONVERT_FUNCTIONS bitmask values.
const (
	SQLFnCvtConvert uint32 = 0x00000001
	SQLFnCvtCast    uint32 = 0x00000002
)

// StaticFlags are the compile-time feature switches a connector profile sets.
// Pointer fields are tri-state: nil leaves the corresponding section keys
// unwritten.
type StaticFlags struct {
	// UseParameterBindings set to false declares that the driver cannot bind
	// parameters, which forces the host to inline literals instead.
	UseParameterBindings *bool
	// StringLiteralEscapeCharacters lists the characters the host must escape
	// inside string literals it inlines.
	StringLiteralEscapeCharacters []string
	// LimitClause is always written; the zero value disables limit pushdown.
	LimitClause LimitClauseKind
	// UseCastInsteadOfConvert selects CAST (true) or CONVERT (false) for type
	// coercions the host generates.
	UseCastInsteadOfConvert *bool
	// Conformance overrides the SQL-92 conformance level the driver reports.
	Conformance *SQLConformance
}

// Compose builds the override record from the flags. Merges are applied in a
// fixed order, each writing only its own keys: parameter bindings, escape
// characters, limit clause (always), cast/convert, conformance.
func Compose(flags StaticFlags) Composed {
	var c Composed

	if flags.UseParameterBindings != nil && !*flags.UseParameterBindings {
		// No parameter binding means every value travels as a literal, so the
		// host must be told which literal forms are safe to generate.
		c.SQLCapabilities = c.SQLCapabilities.Merge(Section{
			SupportsNumericLiterals:       true,
			SupportsStringLiterals:        true,
			SupportsOdbcDateLiterals:      true,
			SupportsOdbcTimeLiterals:      true,
			SupportsOdbcTimestampLiterals: true,
		})
		c.SQLGetFunctions = c.SQLGetFunctions.Merge(Section{
			SQLAPIBindParameter: false,
		})
	}

	if flags.StringLiteralEscapeCharacters != nil {
		escape := append([]string(nil), flags.StringLiteralEscapeCharacters...)
		c.SQLCapabilities = c.SQLCapabilities.Merge(Section{
			StringLiteralEscapeCharacters: escape,
		})
	}

	c.SQLCapabilities = c.SQLCapabilities.Merge(Section{
		LimitClauseKindKey: flags.LimitClause,
	})

	if flags.UseCastInsteadOfConvert != nil {
		fn := SQLFnCvtConvert
		if *flags.UseCastInsteadOfConvert {
			fn = SQLFnCvtCast
		}
		c.SQLGetInfo = c.SQLGetInfo.Merge(Section{
			SQLConvertFunctions: fn,
		})
	}

	if flags.Conformance != nil {
		c.SQLGetInfo = c.SQLGetInfo.Merge(Section{
			SQLSQLConformance: *flags.Conformance,
		})
	}

	return c
}
