// Package options validates free-form connector options against a fixed,
// declarative schema.
//
// The schema is an ordered sequence of typed entries known at build time; it is
// not extensible at runtime. Validation is a single pass: unknown keys fail
// first, then every entry's effective value is checked against its declared
// kind and predicate, and all value problems are reported together in one
// error. On success the caller receives a normalized record in which every
// schema key is present, with defaults filled in for anything the user left
// out.
package options

import (
	"fmt"
	"sort"
	"strings"

	"github.com/duckbridge-labs/duckbridge/pkg/errs"
)

// Kind is the declared type of an option value.
type Kind int

const (
	// Text options hold strings.
	Text Kind = iota
	// Logical options hold booleans.
	Logical
	// Number options hold integers or floats. Decoders disagree on the Go
	// type (YAML yields int, JSON yields float64), so all numeric kinds are
	// accepted and predicates see the original value.
	Number
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Logical:
		return "logical"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Matches reports whether v's runtime type conforms to the kind.
func (k Kind) Matches(v any) bool {
	switch k {
	case Text:
		_, ok := v.(string)
		return ok
	case Logical:
		_, ok := v.(bool)
		return ok
	case Number:
		switch v.(type) {
		case int, int64, float64:
			return true
		}
		return false
	default:
		return false
	}
}

// Entry describes a single option: its name, declared kind, human-readable
// description (embedded in error messages and help output), default value,
// and an optional value predicate. A nil Validate accepts any value of the
// matching kind.
type Entry struct {
	Name        string
	Kind        Kind
	Nullable    bool
	Description string
	Default     any
	Validate    func(any) bool
}

func (e Entry) valid(v any) bool {
	return e.Validate == nil || e.Validate(v)
}

// Schema is an ordered sequence of option entries.
type Schema []Entry

// Names returns the option names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, e := range s {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the entry with the given name.
func (s Schema) Lookup(name string) (Entry, bool) {
	for _, e := range s {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Defaults returns a record holding every schema key with its default value.
func (s Schema) Defaults() map[string]any {
	out := make(map[string]any, len(s))
	for _, e := range s {
		out[e.Name] = e.Default
	}
	return out
}

// Validate checks a user-supplied options record against the schema and
// returns the normalized record: all schema defaults, overridden by the
// user's values. A nil or empty record yields the defaults.
//
// Failure modes, in order of detection:
//   - errs.KindInvalidOption: opts contains keys the schema does not declare;
//     the message names the offending keys and the valid set.
//   - errs.KindInvalidValue: one or more values fail their kind or predicate
//     check; all problems are combined into a single message.
//
// An explicit null is accepted for nullable entries (and kept in the result);
// for non-nullable entries it is accepted only when a non-null default exists,
// and the default shows through in the result. Validate is idempotent:
// feeding a normalized record back in returns it unchanged.
func (s Schema) Validate(opts map[string]any) (map[string]any, error) {
	if len(opts) == 0 {
		return s.Defaults(), nil
	}

	var unknown []string
	for key := range opts {
		if _, ok := s.Lookup(key); !ok {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errs.Newf(errs.KindInvalidOption,
			"unknown option%s %s; valid options are: %s",
			plural(unknown), quoteJoin(unknown), quoteJoin(s.Names()))
	}

	var problems []string
	for _, e := range s {
		v, supplied := opts[e.Name]
		if !supplied {
			v = e.Default
		}
		if v == nil {
			if e.Nullable || e.Default != nil {
				continue
			}
			problems = append(problems, fmt.Sprintf(
				"option %q must not be null (%s)", e.Name, e.Description))
			continue
		}
		if !e.Kind.Matches(v) {
			problems = append(problems, fmt.Sprintf(
				"invalid value %v for option %q: expected %s (%s)",
				v, e.Name, e.Kind, e.Description))
			continue
		}
		if !e.valid(v) {
			problems = append(problems, fmt.Sprintf(
				"invalid value %v for option %q (%s)", v, e.Name, e.Description))
		}
	}
	if len(problems) > 0 {
		return nil, errs.New(errs.KindInvalidValue, strings.Join(problems, "; "))
	}

	out := s.Defaults()
	for _, e := range s {
		v, supplied := opts[e.Name]
		if !supplied {
			continue
		}
		if v == nil && !e.Nullable {
			// An explicit null never shadows a non-nullable default.
			continue
		}
		out[e.Name] = v
	}
	return out, nil
}

func quoteJoin(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

func plural(items []string) string {
	if len(items) > 1 {
		return "s"
	}
	return ""
}
