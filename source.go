package scanq

import (
	"bufio"
	"io"
)

// Source delivers input records to the producer one at a time.
type Source[T any] interface {
	// Next returns the next record and true, or the zero value and false
	// once the input is exhausted.
	Next() (T, bool)
}

// SourceFunc adapts func() (T, bool) to Source[T].
type SourceFunc[T any] func() (T, bool)

func (f SourceFunc[T]) Next() (T, bool) { return f() }

// FromSlice returns a Source yielding the elements of items in order.
// The slice is not copied; the caller must not mutate it during the run.
func FromSlice[T any](items []T) Source[T] {
	s := &sliceSource[T]{items: items}
	return s
}

type sliceSource[T any] struct {
	items []T
	next  int
}

func (s *sliceSource[T]) Next() (T, bool) {
	if s.next >= len(s.items) {
		var zero T
		return zero, false
	}
	v := s.items[s.next]
	s.next++
	return v, true
}

// LineSource yields lines read from r, with the trailing newline removed.
// Not safe for concurrent use; it is meant to be owned by the producer.
type LineSource struct {
	scanner *bufio.Scanner
}

// Lines returns a LineSource reading from r.
func Lines(r io.Reader) *LineSource {
	return &LineSource{scanner: bufio.NewScanner(r)}
}

func (s *LineSource) Next() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return s.scanner.Text(), true
}

// Err returns the first non-EOF error encountered while reading. Call it
// after the run to distinguish end of input from a read failure.
func (s *LineSource) Err() error { return s.scanner.Err() }
