// Package defaultset implements the library's built-in instruction set:
// operand resolution, jump conditions, and the full default instruction
// enumeration with its execute/flag-update semantics.
package defaultset

import (
	"procem/processor"
	"procem/register"
	"procem/word"
)

// Operand is either a register reference or an immediate value.
type Operand[T word.Integer] struct {
	isRegister bool
	reg        register.Register
	value      word.Word[T]
}

// RegisterOperand builds an operand that resolves to the current value
// held in r.
func RegisterOperand[T word.Integer](r register.Register) Operand[T] {
	return Operand[T]{isRegister: true, reg: r}
}

// ValueOperand builds an operand that resolves to the fixed value v.
func ValueOperand[T word.Integer](v word.Word[T]) Operand[T] {
	return Operand[T]{value: v}
}

// Resolve returns the operand's effective value against p's current
// register state.
func (o Operand[T]) Resolve(p *processor.Processor[T]) word.Word[T] {
	if o.isRegister {
		return p.Registers.GetReg(o.reg)
	}
	return o.value
}

func (o Operand[T]) String() string {
	if o.isRegister {
		return o.reg.String()
	}
	return "#" + o.value.String()
}
