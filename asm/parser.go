package asm

import (
	"fmt"
	"strconv"

	"procem/defaultset"
	"procem/register"
	"procem/word"
)

// ParserErrorKind discriminates the syntactic and semantic failures the
// parser can report.
type ParserErrorKind int

const (
	// InvalidToken reports a token that cannot appear in its position.
	InvalidToken ParserErrorKind = iota
	// DuplicateLabel reports a label bound more than once.
	DuplicateLabel
	// UnknownInstruction reports a mnemonic with no match in the
	// default instruction set.
	UnknownInstruction
	// RegisterParsing reports a register token whose text is not a
	// valid register name.
	RegisterParsing
	// LiteralParsing reports a numeric literal that could not be
	// converted to the target word width.
	LiteralParsing
	// CannotConvertStrToVal reports a string literal used where a
	// value is required; strings have no numeric representation.
	CannotConvertStrToVal
	// CannotConvertLiteralToU32 reports a rotate-amount literal that
	// does not fit in 32 bits.
	CannotConvertLiteralToU32
	// LabelNotFound reports a jump/call target label that has not
	// been bound yet at this point in the token stream (no
	// forward-reference support).
	LabelNotFound
	// LabelIndexToWordConversionFailed reports a label whose bound
	// instruction index does not fit into the target word width.
	LabelIndexToWordConversionFailed
)

func (k ParserErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "InvalidToken"
	case DuplicateLabel:
		return "DuplicateLabel"
	case UnknownInstruction:
		return "UnknownInstruction"
	case RegisterParsing:
		return "RegisterParsing"
	case LiteralParsing:
		return "LiteralParsing"
	case CannotConvertStrToVal:
		return "CannotConvertStrToVal"
	case CannotConvertLiteralToU32:
		return "CannotConvertLiteralToU32"
	case LabelNotFound:
		return "LabelNotFound"
	case LabelIndexToWordConversionFailed:
		return "LabelIndexToWordConversionFailed"
	default:
		return "UnknownParserError"
	}
}

// ParserError reports a single parser failure. The parser collects
// every error it encounters rather than stopping at the first.
type ParserError struct {
	Kind       ParserErrorKind
	Idx        int // instruction index the error occurred at
	Expected   string
	Got        string
	Mnemonic   string
	OldIdx     int
	LabelIndex int
	Err        error
}

func (e *ParserError) Error() string {
	switch e.Kind {
	case InvalidToken:
		return fmt.Sprintf("invalid token at instruction %d: expected %s, found %s", e.Idx, e.Expected, e.Got)
	case DuplicateLabel:
		return fmt.Sprintf("duplicate label bound at instruction %d (already bound at instruction %d)", e.Idx, e.OldIdx)
	case UnknownInstruction:
		return fmt.Sprintf("unknown instruction mnemonic %q at instruction %d", e.Mnemonic, e.Idx)
	case RegisterParsing:
		return fmt.Sprintf("could not parse register at instruction %d: %v", e.Idx, e.Err)
	case LiteralParsing:
		return fmt.Sprintf("could not parse literal at instruction %d: %v", e.Idx, e.Err)
	case CannotConvertStrToVal:
		return fmt.Sprintf("cannot convert a string literal to a value at instruction %d", e.Idx)
	case CannotConvertLiteralToU32:
		return fmt.Sprintf("literal at instruction %d could not be converted to a 32-bit value: %v", e.Idx, e.Err)
	case LabelNotFound:
		return fmt.Sprintf("label is not defined at this point in the program (instruction %d)", e.Idx)
	case LabelIndexToWordConversionFailed:
		return fmt.Sprintf("label index %d does not fit into the target word width (instruction %d)", e.LabelIndex, e.Idx)
	default:
		return "unknown parser error"
	}
}

func (e *ParserError) Unwrap() error { return e.Err }

// Parser walks a token stream exactly once, tracking both its cursor
// position and the count of instructions emitted so far, and builds a
// label-to-instruction-index map incrementally as labels are bound.
// Because the map is only ever consulted as it stands at the current
// point in the stream, jump and call targets cannot reference a label
// that has not yet been bound — there is no forward-reference support.
type Parser[T word.Integer] struct {
	tokens           []Token
	pos              int
	labels           map[string]int
	instructionCount int
	errors           []error
}

// NewParser prepares a Parser over a token stream produced by Tokenizer.Run.
func NewParser[T word.Integer](tokens []Token) *Parser[T] {
	return &Parser[T]{tokens: tokens, labels: make(map[string]int)}
}

func (p *Parser[T]) current() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *Parser[T]) advance() (Token, bool) {
	tok, ok := p.current()
	if ok {
		p.pos++
	}
	return tok, ok
}

func (p *Parser[T]) addError(err *ParserError) {
	p.errors = append(p.errors, err)
}

func (p *Parser[T]) describe(tok Token) string {
	switch tok.Kind {
	case TokenLabel:
		return fmt.Sprintf("label %q", tok.Text)
	case TokenRegister:
		return fmt.Sprintf("register %q", tok.Text)
	case TokenLiteral:
		return "literal"
	case TokenInstruction:
		return fmt.Sprintf("instruction %q", tok.Text)
	case TokenComma:
		return "comma"
	case TokenEnd:
		return "end of input"
	default:
		return "unknown token"
	}
}

func (p *Parser[T]) describeOrEOF(tok Token, ok bool) string {
	if !ok {
		return "end of input"
	}
	return p.describe(tok)
}

// Parse runs the single forward pass described above, returning every
// instruction successfully decoded and every error found along the way.
func (p *Parser[T]) Parse() ([]*defaultset.Instruction[T], []error) {
	var instructions []*defaultset.Instruction[T]
	for {
		tok, ok := p.current()
		if !ok || tok.Kind == TokenEnd {
			break
		}
		switch tok.Kind {
		case TokenLabel:
			if oldIdx, exists := p.labels[tok.Text]; exists {
				p.addError(&ParserError{Kind: DuplicateLabel, Idx: p.instructionCount, OldIdx: oldIdx})
			} else {
				p.labels[tok.Text] = p.instructionCount
			}
			p.advance()
		case TokenInstruction:
			p.advance()
			if instr := p.parseInstruction(tok.Text); instr != nil {
				instructions = append(instructions, instr)
				p.instructionCount++
			}
		default:
			p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a label or an instruction", Got: p.describe(tok)})
			p.advance()
		}
	}
	return instructions, p.errors
}

func (p *Parser[T]) expectRegister() (register.Register, bool) {
	tok, ok := p.advance()
	if !ok || tok.Kind != TokenRegister {
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a register", Got: p.describeOrEOF(tok, ok)})
		return 0, false
	}
	reg, err := register.ParseRegister(tok.Text)
	if err != nil {
		p.addError(&ParserError{Kind: RegisterParsing, Idx: p.instructionCount, Err: err})
		return 0, false
	}
	return reg, true
}

func (p *Parser[T]) expectComma() bool {
	tok, ok := p.advance()
	if !ok || tok.Kind != TokenComma {
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a comma", Got: p.describeOrEOF(tok, ok)})
		return false
	}
	return true
}

func (p *Parser[T]) expectOperand() (defaultset.Operand[T], bool) {
	tok, ok := p.advance()
	if !ok {
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "an operand", Got: "end of input"})
		return defaultset.Operand[T]{}, false
	}
	switch tok.Kind {
	case TokenRegister:
		reg, err := register.ParseRegister(tok.Text)
		if err != nil {
			p.addError(&ParserError{Kind: RegisterParsing, Idx: p.instructionCount, Err: err})
			return defaultset.Operand[T]{}, false
		}
		return defaultset.RegisterOperand[T](reg), true
	case TokenLiteral:
		val, perr := p.convertLiteralToWord(tok.Literal)
		if perr != nil {
			p.addError(perr)
			return defaultset.Operand[T]{}, false
		}
		return defaultset.ValueOperand[T](val), true
	default:
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a register or a literal", Got: p.describe(tok)})
		return defaultset.Operand[T]{}, false
	}
}

// expectDestination resolves a jump/call target, either a literal
// address, a register, or a label already bound earlier in the stream.
func (p *Parser[T]) expectDestination() (defaultset.Operand[T], bool) {
	tok, ok := p.advance()
	if !ok {
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a jump target", Got: "end of input"})
		return defaultset.Operand[T]{}, false
	}
	switch tok.Kind {
	case TokenLabel:
		idx, bound := p.labels[tok.Text]
		if !bound {
			p.addError(&ParserError{Kind: LabelNotFound, Idx: p.instructionCount})
			return defaultset.Operand[T]{}, false
		}
		val := word.FromI32[T](int32(idx))
		if val.Int64() != int64(idx) {
			p.addError(&ParserError{Kind: LabelIndexToWordConversionFailed, Idx: p.instructionCount, LabelIndex: idx})
			return defaultset.Operand[T]{}, false
		}
		return defaultset.ValueOperand[T](val), true
	case TokenLiteral:
		val, perr := p.convertLiteralToWord(tok.Literal)
		if perr != nil {
			p.addError(perr)
			return defaultset.Operand[T]{}, false
		}
		return defaultset.ValueOperand[T](val), true
	case TokenRegister:
		reg, err := register.ParseRegister(tok.Text)
		if err != nil {
			p.addError(&ParserError{Kind: RegisterParsing, Idx: p.instructionCount, Err: err})
			return defaultset.Operand[T]{}, false
		}
		return defaultset.RegisterOperand[T](reg), true
	default:
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a jump target", Got: p.describe(tok)})
		return defaultset.Operand[T]{}, false
	}
}

func (p *Parser[T]) expectU32Literal() (uint32, bool) {
	tok, ok := p.advance()
	if !ok || tok.Kind != TokenLiteral {
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a numeric literal", Got: p.describeOrEOF(tok, ok)})
		return 0, false
	}
	var base int
	switch tok.Literal.Kind {
	case LitDecimal:
		base = 10
	case LitBinary:
		base = 2
	case LitOctal:
		base = 8
	case LitHexadecimal:
		base = 16
	default:
		p.addError(&ParserError{Kind: CannotConvertLiteralToU32, Idx: p.instructionCount, Err: fmt.Errorf("literal is not numeric")})
		return 0, false
	}
	v, err := strconv.ParseUint(tok.Literal.Text, base, 32)
	if err != nil {
		p.addError(&ParserError{Kind: CannotConvertLiteralToU32, Idx: p.instructionCount, Err: err})
		return 0, false
	}
	return uint32(v), true
}

// convertLiteralToWord converts a lexed literal into its Word value.
// String literals have no numeric representation and always fail with
// CannotConvertStrToVal.
func (p *Parser[T]) convertLiteralToWord(lit Literal) (word.Word[T], *ParserError) {
	switch lit.Kind {
	case LitDecimal:
		v, err := word.FromStrRadix[T](lit.Text, 10)
		if err != nil {
			return word.Word[T]{}, &ParserError{Kind: LiteralParsing, Idx: p.instructionCount, Err: err}
		}
		return v, nil
	case LitBinary:
		v, err := word.FromStrRadix[T](lit.Text, 2)
		if err != nil {
			return word.Word[T]{}, &ParserError{Kind: LiteralParsing, Idx: p.instructionCount, Err: err}
		}
		return v, nil
	case LitOctal:
		v, err := word.FromStrRadix[T](lit.Text, 8)
		if err != nil {
			return word.Word[T]{}, &ParserError{Kind: LiteralParsing, Idx: p.instructionCount, Err: err}
		}
		return v, nil
	case LitHexadecimal:
		v, err := word.FromStrRadix[T](lit.Text, 16)
		if err != nil {
			return word.Word[T]{}, &ParserError{Kind: LiteralParsing, Idx: p.instructionCount, Err: err}
		}
		return v, nil
	case LitBoolean:
		if lit.BoolValue {
			return word.One[T](), nil
		}
		return word.Zero[T](), nil
	case LitChar:
		return word.FromI32[T](int32(lit.CharValue)), nil
	case LitString:
		return word.Word[T]{}, &ParserError{Kind: CannotConvertStrToVal, Idx: p.instructionCount}
	default:
		return word.Word[T]{}, &ParserError{Kind: LiteralParsing, Idx: p.instructionCount, Err: fmt.Errorf("unknown literal kind")}
	}
}

var jumpMnemonics = map[string]defaultset.JumpCondition{
	"JMP": defaultset.Unconditional,
	"JZ":  defaultset.Zero,
	"JNZ": defaultset.NotZero,
	"JC":  defaultset.Carry,
	"JNC": defaultset.NotCarry,
	"JS":  defaultset.Signed,
	"JNS": defaultset.NotSigned,
	"JG":  defaultset.Greater,
	"JL":  defaultset.Less,
	"JGE": defaultset.GreaterOrEqual,
	"JLE": defaultset.LessOrEqual,
}

func (p *Parser[T]) parseInstruction(mnemonic string) *defaultset.Instruction[T] {
	switch mnemonic {
	case "NOP":
		return defaultset.Nop[T]()
	case "RET":
		return defaultset.Ret[T]()
	case "MOV":
		dest, ok := p.expectRegister()
		if !ok {
			return nil
		}
		if !p.expectComma() {
			return nil
		}
		src, ok := p.expectOperand()
		if !ok {
			return nil
		}
		return defaultset.Mov[T](dest, src)
	case "PUSH":
		src, ok := p.expectOperand()
		if !ok {
			return nil
		}
		return defaultset.Push[T](src)
	case "POP":
		dest, ok := p.expectRegister()
		if !ok {
			return nil
		}
		return defaultset.Pop[T](dest)
	case "CALL":
		target, ok := p.expectDestination()
		if !ok {
			return nil
		}
		return defaultset.Call[T](target)
	case "ADD", "ADDS":
		return p.parseTwoOperand(mnemonic == "ADDS", defaultset.Add[T])
	case "SUB", "SUBS":
		return p.parseTwoOperand(mnemonic == "SUBS", defaultset.Sub[T])
	case "MUL", "MULS":
		return p.parseTwoOperand(mnemonic == "MULS", defaultset.Mul[T])
	case "DIV", "DIVS":
		return p.parseTwoOperand(mnemonic == "DIVS", defaultset.Div[T])
	case "INC", "INCS":
		dest, ok := p.expectRegister()
		if !ok {
			return nil
		}
		return defaultset.Inc[T](dest, mnemonic == "INCS")
	case "DEC", "DECS":
		dest, ok := p.expectRegister()
		if !ok {
			return nil
		}
		return defaultset.Dec[T](dest, mnemonic == "DECS")
	case "CMP":
		a, ok := p.expectOperand()
		if !ok {
			return nil
		}
		if !p.expectComma() {
			return nil
		}
		b, ok := p.expectOperand()
		if !ok {
			return nil
		}
		return defaultset.Cmp[T](a, b)
	case "AND":
		return p.parseBitwise(defaultset.And[T])
	case "OR":
		return p.parseBitwise(defaultset.Or[T])
	case "XOR":
		return p.parseBitwise(defaultset.Xor[T])
	case "NOT":
		dest, ok := p.expectRegister()
		if !ok {
			return nil
		}
		return defaultset.Not[T](dest)
	case "SHL":
		return p.parseShift(defaultset.Shl[T])
	case "SHR":
		return p.parseShift(defaultset.Shr[T])
	case "ROL":
		return p.parseRotate(defaultset.Rol[T])
	case "ROR":
		return p.parseRotate(defaultset.Ror[T])
	default:
		if cond, ok := jumpMnemonics[mnemonic]; ok {
			target, ok := p.expectDestination()
			if !ok {
				return nil
			}
			return defaultset.Jump[T](target, cond)
		}
		p.addError(&ParserError{Kind: UnknownInstruction, Idx: p.instructionCount, Mnemonic: mnemonic})
		return nil
	}
}

func (p *Parser[T]) parseTwoOperand(signed bool, build func(register.Register, defaultset.Operand[T], bool) *defaultset.Instruction[T]) *defaultset.Instruction[T] {
	dest, ok := p.expectRegister()
	if !ok {
		return nil
	}
	if !p.expectComma() {
		return nil
	}
	src, ok := p.expectOperand()
	if !ok {
		return nil
	}
	return build(dest, src, signed)
}

func (p *Parser[T]) parseBitwise(build func(register.Register, defaultset.Operand[T]) *defaultset.Instruction[T]) *defaultset.Instruction[T] {
	dest, ok := p.expectRegister()
	if !ok {
		return nil
	}
	if !p.expectComma() {
		return nil
	}
	src, ok := p.expectOperand()
	if !ok {
		return nil
	}
	return build(dest, src)
}

// parseShift parses a SHL/SHR operand. When the shift amount is given
// as an immediate literal, the default instruction set only allows
// amounts in [1, bits-1] — a 0-bit shift is a no-op better spelled as
// nothing, and a shift of bits or more is always all-zero/undefined for
// a logical shift. A register-valued amount can't be range-checked
// until run time, so it is accepted unconditionally.
func (p *Parser[T]) parseShift(build func(register.Register, defaultset.Operand[T]) *defaultset.Instruction[T]) *defaultset.Instruction[T] {
	dest, ok := p.expectRegister()
	if !ok {
		return nil
	}
	if !p.expectComma() {
		return nil
	}
	tok, ok := p.advance()
	if !ok {
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a shift amount", Got: "end of input"})
		return nil
	}
	switch tok.Kind {
	case TokenLiteral:
		amount, perr := p.convertLiteralToWord(tok.Literal)
		if perr != nil {
			p.addError(perr)
			return nil
		}
		bits := word.BitSize[T]()
		n := amount.Int64()
		if n < 1 || n > int64(bits-1) {
			p.addError(&ParserError{
				Kind:     InvalidToken,
				Idx:      p.instructionCount,
				Expected: fmt.Sprintf("a shift amount between 1 and %d", bits-1),
				Got:      fmt.Sprintf("%d", n),
			})
			return nil
		}
		return build(dest, defaultset.ValueOperand[T](amount))
	case TokenRegister:
		reg, err := register.ParseRegister(tok.Text)
		if err != nil {
			p.addError(&ParserError{Kind: RegisterParsing, Idx: p.instructionCount, Err: err})
			return nil
		}
		return build(dest, defaultset.RegisterOperand[T](reg))
	default:
		p.addError(&ParserError{Kind: InvalidToken, Idx: p.instructionCount, Expected: "a shift amount", Got: p.describe(tok)})
		return nil
	}
}

func (p *Parser[T]) parseRotate(build func(register.Register, uint32) *defaultset.Instruction[T]) *defaultset.Instruction[T] {
	dest, ok := p.expectRegister()
	if !ok {
		return nil
	}
	if !p.expectComma() {
		return nil
	}
	n, ok := p.expectU32Literal()
	if !ok {
		return nil
	}
	return build(dest, n)
}
