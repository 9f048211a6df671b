// Package processor implements the fetch-increment-execute loop that
// drives a program against a register file and stack.
package processor

import (
	"procem/instruction"
	"procem/program"
	"procem/register"
	"procem/stack"
	"procem/word"
)

// Processor owns a register file, a stack, and (once loaded) a program.
// It is parameterised over the same word width as its registers and
// stack.
type Processor[T word.Integer] struct {
	Registers *register.Registers[T]
	Stack     *stack.Stack[T]
	program   *program.Program[instruction.Executor[*Processor[T]]]
}

// New builds a Processor with a fresh register file and a stack of the
// given capacity, with no program loaded.
func New[T word.Integer](stackSize int) *Processor[T] {
	return &Processor[T]{
		Registers: register.New[T](),
		Stack:     stack.New[T](stackSize),
	}
}

// Builder assembles a Processor from explicit parts, mirroring the
// fluent construction style the library exposes alongside New.
type Builder[T word.Integer] struct {
	p *Processor[T]
}

// NewBuilder starts a Builder with a zeroed, empty Processor.
func NewBuilder[T word.Integer]() *Builder[T] {
	return &Builder[T]{p: &Processor[T]{}}
}

// WithRegisters installs an explicit register file.
func (b *Builder[T]) WithRegisters(r *register.Registers[T]) *Builder[T] {
	b.p.Registers = r
	return b
}

// WithStack installs an explicit stack.
func (b *Builder[T]) WithStack(s *stack.Stack[T]) *Builder[T] {
	b.p.Stack = s
	return b
}

// WithProgram installs the program to execute.
func (b *Builder[T]) WithProgram(prog *program.Program[instruction.Executor[*Processor[T]]]) *Builder[T] {
	b.p.program = prog
	return b
}

// Build finalises the Processor, filling in a default register file or
// stack if one was never supplied.
func (b *Builder[T]) Build() *Processor[T] {
	if b.p.Registers == nil {
		b.p.Registers = register.New[T]()
	}
	if b.p.Stack == nil {
		b.p.Stack = stack.New[T](0)
	}
	return b.p
}

// LoadProgram installs or replaces the program this processor executes,
// resetting the program counter to the start of it.
func (p *Processor[T]) LoadProgram(prog *program.Program[instruction.Executor[*Processor[T]]]) {
	p.program = prog
	p.Registers.SetReg(register.PC, word.Zero[T]())
}

// ExecuteNextInstruction fetches the instruction at the current PC,
// advances PC by one instruction slot, and then executes it. This
// ordering is mandatory: a jump instruction that writes PC during
// execution must see its write survive the increment, not be
// overwritten by it.
func (p *Processor[T]) ExecuteNextInstruction() error {
	pc := int(p.Registers.PC().Int())
	instr, err := p.program.Fetch(pc)
	if err != nil {
		return err
	}
	p.Registers.Inc(register.PC)
	instr.Execute(p)
	return nil
}

// RunProgram repeatedly executes instructions until an error surfaces.
// A *program.OutOfBoundsError return is the expected, successful
// termination signal — there is no explicit halt instruction, per
// design. Any other error represents a genuine parser/program fault
// that stopped execution early; stack overflow/underflow and division
// by zero are fatal conditions that panic rather than surface here.
func (p *Processor[T]) RunProgram() error {
	for {
		if err := p.ExecuteNextInstruction(); err != nil {
			return err
		}
	}
}
