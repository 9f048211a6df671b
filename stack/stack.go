// Package stack implements the fixed-capacity value stack addressed by
// a processor's stack-pointer register.
package stack

import (
	"fmt"
	"strings"

	"procem/word"
)

// Stack is a fixed-length sequence of words. Capacity is set once at
// construction and never changes; Go has no first-class way to
// parameterise a slice's length the way the original const-generic
// array did, so capacity is enforced by convention (panics) instead.
type Stack[T word.Integer] struct {
	data []word.Word[T]
}

// New builds a Stack with the given fixed capacity, all entries zeroed.
func New[T word.Integer](capacity int) *Stack[T] {
	return &Stack[T]{data: make([]word.Word[T], capacity)}
}

// Len reports the stack's fixed capacity.
func (s *Stack[T]) Len() int { return len(s.data) }

// Read returns the value at index sp. It panics if sp is out of range —
// stack out-of-bounds access is a fatal, unrecoverable condition, not a
// reportable error.
func (s *Stack[T]) Read(sp word.Word[T]) word.Word[T] {
	idx := int(sp.Int())
	if idx < 0 || idx >= len(s.data) {
		panic(fmt.Sprintf("stack read out of bounds: index %d, capacity %d", idx, len(s.data)))
	}
	return s.data[idx]
}

// Write stores value at index sp. It panics if sp is out of range.
func (s *Stack[T]) Write(sp word.Word[T], value word.Word[T]) {
	idx := int(sp.Int())
	if idx < 0 || idx >= len(s.data) {
		panic(fmt.Sprintf("stack write out of bounds: index %d, capacity %d", idx, len(s.data)))
	}
	s.data[idx] = value
}

// String renders the stack's contents as a bracketed, space-separated list.
func (s *Stack[T]) String() string {
	parts := make([]string, len(s.data))
	for i, v := range s.data {
		parts[i] = v.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
