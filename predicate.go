package scanq

import "strings"

// Predicate reports whether a record counts as a match. Implementations must
// be pure and side-effect free: each is called concurrently from every
// worker.
type Predicate[T any] func(T) bool

// Contains returns a Predicate matching strings that contain term.
func Contains(term string) Predicate[string] {
	return func(s string) bool { return strings.Contains(s, term) }
}
