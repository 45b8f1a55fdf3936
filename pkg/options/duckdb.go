package options

import (
	"math"
	"regexp"
)

// memoryLimitPattern matches DuckDB memory size literals such as "4GB",
// "512 MiB", "1.5GiB" or "80%".
var memoryLimitPattern = regexp.MustCompile(`(?i)^[0-9]+(\.[0-9]+)?\s*(%|[KMGTP]i?B|B)$`)

// DuckDB returns the option schema understood by the DuckDB connector. The
// entries mirror the settings the DuckDB ODBC driver accepts in its
// connection string; access_mode is the only entry with a non-null default.
func DuckDB() Schema {
	return Schema{
		{
			Name:        "access_mode",
			Kind:        Text,
			Description: `how the database may be opened: "automatic", "read_only" or "read_write"`,
			Default:     "automatic",
			Validate:    oneOf("automatic", "read_only", "read_write"),
		},
		{
			Name:        "custom_user_agent",
			Kind:        Text,
			Nullable:    true,
			Description: "extra token appended to the client user agent reported to the server",
			Validate:    nonEmpty,
		},
		{
			Name:        "allow_community_extensions",
			Kind:        Logical,
			Nullable:    true,
			Description: "allow loading extensions from the community repository",
		},
		{
			Name:        "allow_unsigned_extensions",
			Kind:        Logical,
			Nullable:    true,
			Description: "allow loading extensions with invalid or missing signatures",
		},
		{
			Name:        "autoinstall_known_extensions",
			Kind:        Logical,
			Nullable:    true,
			Description: "install known extensions automatically when a query needs them",
		},
		{
			Name:        "autoload_known_extensions",
			Kind:        Logical,
			Nullable:    true,
			Description: "load known extensions automatically when a query needs them",
		},
		{
			Name:        "memory_limit",
			Kind:        Text,
			Nullable:    true,
			Description: `maximum memory the database may use, as a size literal such as "4GB" or "80%"`,
			Validate:    memoryLimit,
		},
		{
			Name:        "threads",
			Kind:        Number,
			Nullable:    true,
			Description: "number of worker threads, a whole number of at least 1",
			Validate:    wholeNumberAtLeast(1),
		},
		{
			Name:        "temp_directory",
			Kind:        Text,
			Nullable:    true,
			Description: "directory for spilling data that exceeds the memory limit",
			Validate:    nonEmpty,
		},
	}
}

func oneOf(allowed ...string) func(any) bool {
	return func(v any) bool {
		s, ok := v.(string)
		if !ok {
			return false
		}
		for _, a := range allowed {
			if s == a {
				return true
			}
		}
		return false
	}
}

func nonEmpty(v any) bool {
	s, ok := v.(string)
	return ok && s != ""
}

func memoryLimit(v any) bool {
	s, ok := v.(string)
	return ok && memoryLimitPattern.MatchString(s)
}

func wholeNumberAtLeast(min int64) func(any) bool {
	return func(v any) bool {
		switch n := v.(type) {
		case int:
			return int64(n) >= min
		case int64:
			return n >= min
		case float64:
			return n == math.Trunc(n) && n >= float64(min)
		default:
			return false
		}
	}
}
