package asm

import (
	"procem/instruction"
	"procem/processor"
	"procem/program"
	"procem/word"
)

// AssemblerError wraps whichever tokenizer or parser error produced it.
type AssemblerError struct {
	Err error
}

func (e *AssemblerError) Error() string { return e.Err.Error() }
func (e *AssemblerError) Unwrap() error  { return e.Err }

// Assemble tokenizes then parses source, collecting tokenizer errors
// first; parsing only runs if tokenizing succeeded. It returns either
// the finished program, or the full list of errors found.
func Assemble[T word.Integer](source string) (*program.Program[instruction.Executor[*processor.Processor[T]]], []error) {
	tokenizer := NewTokenizer(source)
	tokens, tokenizerErrors := tokenizer.Run()
	if len(tokenizerErrors) > 0 {
		return nil, wrapAll(tokenizerErrors)
	}

	parser := NewParser[T](tokens)
	instructions, parserErrors := parser.Parse()
	if len(parserErrors) > 0 {
		return nil, wrapAll(parserErrors)
	}

	executors := make([]instruction.Executor[*processor.Processor[T]], len(instructions))
	for i, instr := range instructions {
		executors[i] = instr
	}
	return program.New(executors), nil
}

func wrapAll(errs []error) []error {
	wrapped := make([]error, len(errs))
	for i, err := range errs {
		wrapped[i] = &AssemblerError{Err: err}
	}
	return wrapped
}
