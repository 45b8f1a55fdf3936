package odbcconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSectionMerge(t *testing.T) {
	t.Run("overlay wins on collision", func(t *testing.T) {
		base := Section{"a": 1, "b": 2}
		got := base.Merge(Section{"b": 20, "c": 30})

		assert.Equal(t, Section{"a": 1, "b": 20, "c": 30}, got)
	})

	t.Run("receiver is never mutated", func(t *testing.T) {
		base := Section{"a": 1}
		_ = base.Merge(Section{"a": 2, "b": 3})

		assert.Equal(t, Section{"a": 1}, base)
	})

	t.Run("nil receiver", func(t *testing.T) {
		var base Section
		got := base.Merge(Section{"a": 1})

		assert.Equal(t, Section{"a": 1}, got)
	})

	t.Run("nil overlay copies the receiver", func(t *testing.T) {
		base := Section{"a": 1}
		got := base.Merge(nil)

		assert.Equal(t, base, got)
		got["b"] = 2
		assert.NotContains(t, base, "b")
	})
}

func TestComposeZeroFlags(t *testing.T) {
	got := Compose(StaticFlags{})

	// Only the limit clause step is unconditional.
	assert.Equal(t, Section{LimitClauseKindKey: LimitNone}, got.SQLCapabilities)
	assert.Nil(t, got.SQLGetFunctions)
	assert.Nil(t, got.SQLGetInfo)
}

func TestComposeParameterBindings(t *testing.T) {
	tests := []struct {
		name         string
		bindings     *bool
		wantLiterals bool
	}{
		{"nil leaves literals unset", nil, false},
		{"true leaves literals unset", boolPtr(true), false},
		{"false forces literal support", boolPtr(false), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(StaticFlags{UseParameterBindings: tt.bindings})

			if !tt.wantLiterals {
				assert.NotContains(t, got.SQLCapabilities, SupportsStringLiterals)
				assert.Nil(t, got.SQLGetFunctions)
				return
			}

			for _, key := range []string{
				SupportsNumericLiterals,
				SupportsStringLiterals,
				SupportsOdbcDateLiterals,
				SupportsOdbcTimeLiterals,
				SupportsOdbcTimestampLiterals,
			} {
				assert.Equal(t, true, got.SQLCapabilities[key], "capability %s", key)
			}
			assert.Equal(t, Section{SQLAPIBindParameter: false}, got.SQLGetFunctions)
		})
	}
}

func TestComposeCastConvert(t *testing.T) {
	tests := []struct {
		name string
		cast *bool
		want any
	}{
		{"nil writes nothing", nil, nil},
		{"true selects cast", boolPtr(true), SQLFnCvtCast},
		{"false selects convert", boolPtr(false), SQLFnCvtConvert},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compose(StaticFlags{UseCastInsteadOfConvert: tt.cast})

			if tt.want == nil {
				assert.NotContains(t, got.SQLGetInfo, SQLConvertFunctions)
				return
			}
			assert.Equal(t, tt.want, got.SQLGetInfo[SQLConvertFunctions])
		})
	}
}

func TestComposeEscapeAndConformance(t *testing.T) {
	conformance := SQL92Intermediate
	got := Compose(StaticFlags{
		StringLiteralEscapeCharacters: []string{"'", `\`},
		LimitClause:                   LimitTop,
		Conformance:                   &conformance,
	})

	assert.Equal(t, []string{"'", `\`}, got.SQLCapabilities[StringLiteralEscapeCharacters])
	assert.Equal(t, LimitTop, got.SQLCapabilities[LimitClauseKindKey])
	assert.Equal(t, SQL92Intermediate, got.SQLGetInfo[SQLSQLConformance])
}

func TestComposeDoesNotAliasEscapeSlice(t *testing.T) {
	escape := []string{"'"}
	got := Compose(StaticFlags{StringLiteralEscapeCharacters: escape})

	escape[0] = "x"
	assert.Equal(t, []string{"'"}, got.SQLCapabilities[StringLiteralEscapeCharacters])
}

func TestDuckDBProfile(t *testing.T) {
	got := Compose(DuckDB())

	require.NotNil(t, got.SQLCapabilities)
	assert.Equal(t, Section{
		SupportsNumericLiterals:       true,
		SupportsStringLiterals:        true,
		SupportsOdbcDateLiterals:      true,
		SupportsOdbcTimeLiterals:      true,
		SupportsOdbcTimestampLiterals: true,
		StringLiteralEscapeCharacters: []string{"'"},
		LimitClauseKindKey:            LimitOffset,
	}, got.SQLCapabilities)

	assert.Equal(t, Section{SQLAPIBindParameter: false}, got.SQLGetFunctions)
	assert.Equal(t, Section{
		SQLConvertFunctions: SQLFnCvtCast,
		SQLSQLConformance:   SQL92Full,
	}, got.SQLGetInfo)
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "limit_offset", LimitOffset.String())
	assert.Equal(t, "none", LimitNone.String())
	assert.Equal(t, "SQL_SC_SQL92_FULL", SQL92Full.String())
	assert.Equal(t, "SQL_SC_FIPS127_2_TRANSITIONAL", FIPS127Transitional.String())
}

func boolPtr(b bool) *bool {
	return &b
}
