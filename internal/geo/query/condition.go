// Package query describes filter predicates independently of where they run.
// A Condition names the column and match kind for SQL and carries the same
// predicate as a Go function for in-memory tables, so both evaluate a filter
// identically.
package query

import "strings"

// Match is the kind of comparison a condition performs.
type Match int

const (
	// MatchEqual compares for exact equality.
	MatchEqual Match = iota
	// MatchContains is a case-insensitive substring match.
	MatchContains
)

func (m Match) String() string {
	switch m {
	case MatchEqual:
		return "equal"
	case MatchContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Condition is one predicate of a conjunctive filter over records of type T.
type Condition[T any] struct {
	Column  string
	Match   Match
	Arg     any
	matches func(T) bool
}

// Matches evaluates the condition against a record.
func (c Condition[T]) Matches(record T) bool {
	if c.matches == nil {
		return false
	}
	return c.matches(record)
}

// Equal builds an exact-match condition on column.
func Equal[T any, V comparable](column string, arg V, field func(T) V) Condition[T] {
	return Condition[T]{
		Column: column,
		Match:  MatchEqual,
		Arg:    arg,
		matches: func(r T) bool {
			return field(r) == arg
		},
	}
}

// Contains builds a case-insensitive substring condition on column.
func Contains[T any](column, arg string, field func(T) string) Condition[T] {
	needle := strings.ToLower(arg)
	return Condition[T]{
		Column: column,
		Match:  MatchContains,
		Arg:    arg,
		matches: func(r T) bool {
			return strings.Contains(strings.ToLower(field(r)), needle)
		},
	}
}

// MatchAll reports whether record satisfies every condition. An empty list
// matches everything.
func MatchAll[T any](conds []Condition[T], record T) bool {
	for _, c := range conds {
		if !c.Matches(record) {
			return false
		}
	}
	return true
}
