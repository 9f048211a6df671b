package defaultset

import (
	"fmt"

	"procem/processor"
	"procem/register"
	"procem/word"
)

// Kind discriminates the closed set of instruction variants. Dispatch
// happens through a single switch in Execute rather than per-variant
// types, matching the tagged-union-over-inheritance shape the rest of
// the module follows.
type Kind int

const (
	KindNop Kind = iota
	KindMov
	KindPush
	KindPop
	KindCall
	KindRet
	KindAdd
	KindSub
	KindMul
	KindDiv
	KindInc
	KindDec
	KindJump
	KindCmp
	KindAnd
	KindOr
	KindXor
	KindNot
	KindShl
	KindShr
	KindRol
	KindRor
)

func (k Kind) String() string {
	switch k {
	case KindNop:
		return "NOP"
	case KindMov:
		return "MOV"
	case KindPush:
		return "PUSH"
	case KindPop:
		return "POP"
	case KindCall:
		return "CALL"
	case KindRet:
		return "RET"
	case KindAdd:
		return "ADD"
	case KindSub:
		return "SUB"
	case KindMul:
		return "MUL"
	case KindDiv:
		return "DIV"
	case KindInc:
		return "INC"
	case KindDec:
		return "DEC"
	case KindJump:
		return "JUMP"
	case KindCmp:
		return "CMP"
	case KindAnd:
		return "AND"
	case KindOr:
		return "OR"
	case KindXor:
		return "XOR"
	case KindNot:
		return "NOT"
	case KindShl:
		return "SHL"
	case KindShr:
		return "SHR"
	case KindRol:
		return "ROL"
	case KindRor:
		return "ROR"
	default:
		return "INVALID"
	}
}

// Instruction is a single decoded instruction from the default
// instruction set. Only the fields relevant to Kind are populated by
// the constructors below.
type Instruction[T word.Integer] struct {
	Kind   Kind
	Dest   register.Register
	Src    Operand[T]
	Src2   Operand[T]
	Signed bool
	Cond   JumpCondition
	Rotate uint32
}

func (instr *Instruction[T]) String() string {
	switch instr.Kind {
	case KindNop, KindRet:
		return instr.Kind.String()
	case KindPush, KindCall:
		return fmt.Sprintf("%s %s", instr.Kind, instr.Src)
	case KindPop, KindNot:
		return fmt.Sprintf("%s %s", instr.Kind, instr.Dest)
	case KindInc, KindDec:
		suffix := ""
		if instr.Signed {
			suffix = "S"
		}
		return fmt.Sprintf("%s%s %s", instr.Kind, suffix, instr.Dest)
	case KindAdd, KindSub, KindMul, KindDiv:
		suffix := ""
		if instr.Signed {
			suffix = "S"
		}
		return fmt.Sprintf("%s%s %s,%s", instr.Kind, suffix, instr.Dest, instr.Src)
	case KindMov, KindAnd, KindOr, KindXor, KindShl, KindShr:
		return fmt.Sprintf("%s %s,%s", instr.Kind, instr.Dest, instr.Src)
	case KindRol, KindRor:
		return fmt.Sprintf("%s %s,#%d", instr.Kind, instr.Dest, instr.Rotate)
	case KindJump:
		return fmt.Sprintf("JUMP[%s] %s", instr.Cond, instr.Src)
	case KindCmp:
		return fmt.Sprintf("CMP %s,%s", instr.Src, instr.Src2)
	default:
		return "INVALID"
	}
}

// Nop builds a no-op instruction.
func Nop[T word.Integer]() *Instruction[T] { return &Instruction[T]{Kind: KindNop} }

// Mov builds dest = src.
func Mov[T word.Integer](dest register.Register, src Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindMov, Dest: dest, Src: src}
}

// Push builds a push of src's resolved value onto the stack.
func Push[T word.Integer](src Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindPush, Src: src}
}

// Pop builds dest = pop().
func Pop[T word.Integer](dest register.Register) *Instruction[T] {
	return &Instruction[T]{Kind: KindPop, Dest: dest}
}

// Call builds a call to target, pushing the return address first.
func Call[T word.Integer](target Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindCall, Src: target}
}

// Ret builds a return: pop the saved PC and jump to it.
func Ret[T word.Integer]() *Instruction[T] { return &Instruction[T]{Kind: KindRet} }

// Add builds dest = dest + src. Only the signed form touches flags.
func Add[T word.Integer](dest register.Register, src Operand[T], signed bool) *Instruction[T] {
	return &Instruction[T]{Kind: KindAdd, Dest: dest, Src: src, Signed: signed}
}

// Sub builds dest = dest - src. Only the signed form touches flags.
func Sub[T word.Integer](dest register.Register, src Operand[T], signed bool) *Instruction[T] {
	return &Instruction[T]{Kind: KindSub, Dest: dest, Src: src, Signed: signed}
}

// Mul builds dest = dest * src. Only the signed form touches flags.
func Mul[T word.Integer](dest register.Register, src Operand[T], signed bool) *Instruction[T] {
	return &Instruction[T]{Kind: KindMul, Dest: dest, Src: src, Signed: signed}
}

// Div builds dest = dest / src. Only the signed form touches flags.
func Div[T word.Integer](dest register.Register, src Operand[T], signed bool) *Instruction[T] {
	return &Instruction[T]{Kind: KindDiv, Dest: dest, Src: src, Signed: signed}
}

// Inc builds dest++. The unsigned form never touches flags; the signed
// form is equivalent to Add(dest, Value(1), true).
func Inc[T word.Integer](dest register.Register, signed bool) *Instruction[T] {
	return &Instruction[T]{Kind: KindInc, Dest: dest, Signed: signed}
}

// Dec builds dest--. The unsigned form never touches flags; the signed
// form is equivalent to Sub(dest, Value(1), true).
func Dec[T word.Integer](dest register.Register, signed bool) *Instruction[T] {
	return &Instruction[T]{Kind: KindDec, Dest: dest, Signed: signed}
}

// Jump builds a conditional or unconditional transfer of control to to.
func Jump[T word.Integer](to Operand[T], cond JumpCondition) *Instruction[T] {
	return &Instruction[T]{Kind: KindJump, Src: to, Cond: cond}
}

// Cmp builds a comparison of a and b: updates flags, discards the result.
func Cmp[T word.Integer](a, b Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindCmp, Src: a, Src2: b}
}

// And builds dest = dest & src. Never touches flags.
func And[T word.Integer](dest register.Register, src Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindAnd, Dest: dest, Src: src}
}

// Or builds dest = dest | src. Never touches flags.
func Or[T word.Integer](dest register.Register, src Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindOr, Dest: dest, Src: src}
}

// Xor builds dest = dest ^ src. Never touches flags.
func Xor[T word.Integer](dest register.Register, src Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindXor, Dest: dest, Src: src}
}

// Not builds dest = ^dest. Never touches flags.
func Not[T word.Integer](dest register.Register) *Instruction[T] {
	return &Instruction[T]{Kind: KindNot, Dest: dest}
}

// Shl builds dest = dest << amount (logical). Never touches flags.
func Shl[T word.Integer](dest register.Register, amount Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindShl, Dest: dest, Src: amount}
}

// Shr builds dest = dest >> amount (logical). Never touches flags.
func Shr[T word.Integer](dest register.Register, amount Operand[T]) *Instruction[T] {
	return &Instruction[T]{Kind: KindShr, Dest: dest, Src: amount}
}

// Rol builds dest = rotate_left(dest, n). Never touches flags.
func Rol[T word.Integer](dest register.Register, n uint32) *Instruction[T] {
	return &Instruction[T]{Kind: KindRol, Dest: dest, Rotate: n}
}

// Ror builds dest = rotate_right(dest, n). Never touches flags.
func Ror[T word.Integer](dest register.Register, n uint32) *Instruction[T] {
	return &Instruction[T]{Kind: KindRor, Dest: dest, Rotate: n}
}

// Execute carries out the instruction against p. Implements
// instruction.Executor[*processor.Processor[T]].
func (instr *Instruction[T]) Execute(p *processor.Processor[T]) {
	switch instr.Kind {
	case KindNop:
		return
	case KindMov:
		p.Registers.SetReg(instr.Dest, instr.Src.Resolve(p))
	case KindPush:
		push(p, instr.Src.Resolve(p))
	case KindPop:
		p.Registers.SetReg(instr.Dest, pop(p))
	case KindCall:
		push(p, p.Registers.PC())
		p.Registers.SetReg(register.PC, instr.Src.Resolve(p))
	case KindRet:
		p.Registers.SetReg(register.PC, pop(p))
	case KindAdd:
		instr.add(p)
	case KindSub:
		instr.sub(p)
	case KindMul:
		instr.mul(p)
	case KindDiv:
		instr.div(p)
	case KindInc:
		instr.inc(p)
	case KindDec:
		instr.dec(p)
	case KindJump:
		if Check(instr.Cond, p) {
			p.Registers.SetReg(register.PC, instr.Src.Resolve(p))
		}
	case KindCmp:
		instr.cmp(p)
	case KindAnd:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).And(instr.Src.Resolve(p)))
	case KindOr:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).Or(instr.Src.Resolve(p)))
	case KindXor:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).Xor(instr.Src.Resolve(p)))
	case KindNot:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).Not())
	case KindShl:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).Shl(instr.Src.Resolve(p)))
	case KindShr:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).Shr(instr.Src.Resolve(p)))
	case KindRol:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).RotateLeft(instr.Rotate))
	case KindRor:
		p.Registers.SetReg(instr.Dest, p.Registers.GetReg(instr.Dest).RotateRight(instr.Rotate))
	}
}

func push[T word.Integer](p *processor.Processor[T], v word.Word[T]) {
	p.Registers.Inc(register.SP)
	p.Stack.Write(p.Registers.SP(), v)
}

func pop[T word.Integer](p *processor.Processor[T]) word.Word[T] {
	v := p.Stack.Read(p.Registers.SP())
	p.Registers.Dec(register.SP)
	return v
}

func setSignedZeroFlags[T word.Integer](p *processor.Processor[T], result word.Word[T]) {
	p.Registers.SetFlag(register.Z, result.IsZero())
	p.Registers.SetFlag(register.S, result.Negative())
}

func (instr *Instruction[T]) add(p *processor.Processor[T]) {
	a := p.Registers.GetReg(instr.Dest)
	b := instr.Src.Resolve(p)
	if !instr.Signed {
		p.Registers.SetReg(instr.Dest, a.Add(b))
		return
	}
	result, overflow := a.OverflowingAdd(b)
	carry := a.CheckCarryAdd(b)
	p.Registers.SetReg(instr.Dest, result)
	p.Registers.SetFlag(register.C, carry)
	p.Registers.SetFlag(register.V, overflow)
	setSignedZeroFlags(p, result)
}

func (instr *Instruction[T]) sub(p *processor.Processor[T]) {
	a := p.Registers.GetReg(instr.Dest)
	b := instr.Src.Resolve(p)
	if !instr.Signed {
		p.Registers.SetReg(instr.Dest, a.Sub(b))
		return
	}
	result, overflow := a.OverflowingSub(b)
	carry := a.CheckCarrySub(b)
	p.Registers.SetReg(instr.Dest, result)
	p.Registers.SetFlag(register.C, carry)
	p.Registers.SetFlag(register.V, overflow)
	setSignedZeroFlags(p, result)
}

func (instr *Instruction[T]) mul(p *processor.Processor[T]) {
	a := p.Registers.GetReg(instr.Dest)
	b := instr.Src.Resolve(p)
	if !instr.Signed {
		p.Registers.SetReg(instr.Dest, a.Mul(b))
		return
	}
	result, overflow := a.OverflowingMul(b)
	carry := a.CheckCarryMul(b)
	p.Registers.SetReg(instr.Dest, result)
	p.Registers.SetFlag(register.C, carry)
	p.Registers.SetFlag(register.V, overflow)
	setSignedZeroFlags(p, result)
}

func (instr *Instruction[T]) div(p *processor.Processor[T]) {
	a := p.Registers.GetReg(instr.Dest)
	b := instr.Src.Resolve(p)
	if !instr.Signed {
		p.Registers.SetReg(instr.Dest, a.Div(b))
		return
	}
	result, overflow := a.OverflowingDiv(b)
	p.Registers.SetReg(instr.Dest, result)
	p.Registers.SetFlag(register.C, overflow)
	p.Registers.SetFlag(register.V, overflow)
	setSignedZeroFlags(p, result)
}

func (instr *Instruction[T]) inc(p *processor.Processor[T]) {
	if !instr.Signed {
		p.Registers.Inc(instr.Dest)
		return
	}
	delegate := Add[T](instr.Dest, ValueOperand[T](word.One[T]()), true)
	delegate.add(p)
}

func (instr *Instruction[T]) dec(p *processor.Processor[T]) {
	if !instr.Signed {
		p.Registers.Dec(instr.Dest)
		return
	}
	delegate := Sub[T](instr.Dest, ValueOperand[T](word.One[T]()), true)
	delegate.sub(p)
}

func (instr *Instruction[T]) cmp(p *processor.Processor[T]) {
	a := instr.Src.Resolve(p)
	b := instr.Src2.Resolve(p)
	result, overflow := a.OverflowingSub(b)
	carry := a.CheckCarrySub(b)
	p.Registers.SetFlag(register.C, carry)
	p.Registers.SetFlag(register.V, overflow)
	setSignedZeroFlags(p, result)
}
