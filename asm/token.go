// Package asm implements the text assembler: a character-level
// tokenizer, a single-pass parser, and the Assemble entry point that
// composes them into an executable program.
package asm

// TokenKind discriminates the small set of token shapes the tokenizer
// produces.
type TokenKind int

const (
	TokenLabel TokenKind = iota
	TokenRegister
	TokenLiteral
	TokenInstruction
	TokenComma
	TokenEnd
)

// LiteralKind discriminates the literal forms a `#`-prefixed token can take.
type LiteralKind int

const (
	LitDecimal LiteralKind = iota
	LitBinary
	LitHexadecimal
	LitOctal
	LitBoolean
	LitString
	LitChar
)

// Literal carries the parsed payload of a literal token. Only the
// field matching Kind is meaningful.
type Literal struct {
	Kind      LiteralKind
	Text      string // raw digit run for numeric kinds, body for strings
	BoolValue bool
	CharValue rune
}

// Token is one lexical unit produced by the tokenizer.
type Token struct {
	Kind    TokenKind
	Text    string // label name, upper-cased register name, or upper-cased instruction mnemonic
	Literal Literal
}
