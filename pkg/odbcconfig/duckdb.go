package odbcconfig

// DuckDB returns the static profile shipped for the DuckDB ODBC driver: no
// parameter bindings (the driver's SQLBindParameter support is incomplete),
// single quotes escaped by doubling, LIMIT/OFFSET row limiting, CAST for
// coercions, and full SQL-92 conformance.
func DuckDB() StaticFlags {
	bindings := false
	cast := true
	conformance := SQL92Full
	return StaticFlags{
		UseParameterBindings:          &bindings,
		StringLiteralEscapeCharacters: []string{"'"},
		LimitClause:                   LimitOffset,
		UseCastInsteadOfConvert:       &cast,
		Conformance:                   &conformance,
	}
}
