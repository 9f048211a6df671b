// Package program holds the immutable, indexable sequence of decoded
// instructions a Processor executes.
package program

import "fmt"

// Program is an immutable sequence of instructions, indexed by program
// counter value.
type Program[I any] struct {
	instructions []I
}

// New wraps instructions into a Program. The slice is owned by the
// returned Program and should not be mutated afterwards.
func New[I any](instructions []I) *Program[I] {
	return &Program[I]{instructions: instructions}
}

// Len reports the number of instructions in the program.
func (p *Program[I]) Len() int { return len(p.instructions) }

// OutOfBoundsError reports that pc does not address any instruction in
// the program. This is the expected, recoverable termination signal a
// Processor reaches at the end of normal execution — there is no
// explicit halt instruction.
type OutOfBoundsError struct {
	PC         int
	ProgramLen int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("program counter %d is out of bounds for a program of length %d", e.PC, e.ProgramLen)
}

// NoProgramLoadedError reports that a Processor attempted to fetch from
// a nil program.
type NoProgramLoadedError struct{}

func (e *NoProgramLoadedError) Error() string {
	return "no program loaded"
}

// Fetch returns the instruction at pc, or an error if pc addresses
// nothing in the program.
func (p *Program[I]) Fetch(pc int) (I, error) {
	var zero I
	if p == nil {
		return zero, &NoProgramLoadedError{}
	}
	if pc < 0 || pc >= len(p.instructions) {
		return zero, &OutOfBoundsError{PC: pc, ProgramLen: len(p.instructions)}
	}
	return p.instructions[pc], nil
}
