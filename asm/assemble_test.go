package asm

import (
	"errors"
	"testing"

	"procem/processor"
	"procem/register"
)

func assertEqual[T comparable](t *testing.T, got, want T, format string, args ...any) {
	t.Helper()
	if got != want {
		t.Fatalf(format+" (got %v, want %v)", append(args, got, want)...)
	}
}

func compileAndRun(t *testing.T, source string) *processor.Processor[int32] {
	t.Helper()
	prog, errs := Assemble[int32](source)
	if len(errs) > 0 {
		t.Fatalf("unexpected assembler errors: %v", errs)
	}
	p := processor.New[int32](16)
	p.LoadProgram(prog)
	if err := p.RunProgram(); err == nil {
		t.Fatalf("expected program to terminate via program-counter out of bounds")
	}
	return p
}

func TestTokenizeWorkedExample(t *testing.T) {
	source := ".main MOV R0,#5\nNOP\nMOV R256,#0xBc2a\nMUL R0,R256\nJMP .main"
	tokenizer := NewTokenizer(source)
	tokens, errs := tokenizer.Run()
	if len(errs) > 0 {
		t.Fatalf("unexpected tokenizer errors: %v", errs)
	}
	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	assertEqual(t, kinds[0], TokenLabel, "first token should be the .main label")
	assertEqual(t, kinds[len(kinds)-1], TokenEnd, "stream should terminate with TokenEnd")
}

func TestMultiplicationByRepeatedAddEndToEnd(t *testing.T) {
	source := `
		MOV R0,#0
		MOV R1,#5
		MOV R2,#2
		.loop
		ADD R0,R1
		DEC R2
		CMP R2,#0
		JNZ .loop
	`
	p := compileAndRun(t, source)
	assertEqual(t, p.Registers.GetReg(register.R0).Int(), int32(10), "5 added twice should total 10")
}

func TestLiteralBaseEquivalence(t *testing.T) {
	source := "MOV R0,#10\nMOV R1,#0b1010\nMOV R2,#0xA\nMOV R3,#0o12"
	p := compileAndRun(t, source)
	for _, r := range []register.Register{register.R0, register.R1, register.R2, register.R3} {
		assertEqual(t, p.Registers.GetReg(r).Int(), int32(10), "literal base %v should equal decimal 10", r)
	}
}

func TestFactorialOfFive(t *testing.T) {
	source := `
		MOV R0,#1
		MOV R1,#5
		.loop
		MULS R0,R1
		DECS R1
		JNZ .loop
	`
	p := compileAndRun(t, source)
	assertEqual(t, p.Registers.GetReg(register.R0).Int(), int32(120), "factorial of 5 should be 120")
}

func TestNoForwardLabelReference(t *testing.T) {
	source := "JMP .later\n.later\nNOP"
	_, errs := Assemble[int32](source)
	if len(errs) == 0 {
		t.Fatalf("expected an error for a forward label reference")
	}
}

func TestStringLiteralCannotConvertToValue(t *testing.T) {
	source := `MOV R0,#"hi"`
	_, errs := Assemble[int32](source)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error converting a string literal to a value, got %v", errs)
	}
	var perr *ParserError
	if !errors.As(errs[0], &perr) {
		t.Fatalf("expected a *ParserError, got %T: %v", errs[0], errs[0])
	}
	assertEqual(t, perr.Kind, CannotConvertStrToVal, "wrong error kind for a string-as-value literal")
}

func TestSignedAddOverflowSetsOverflowFlag(t *testing.T) {
	source := `
		MOV R0,#0x7FFFFFFF
		ADDS R0,#1
	`
	p := compileAndRun(t, source)
	assertEqual(t, p.Registers.GetFlag(register.V), true, "32-bit signed overflow should set the overflow flag")
}

func TestNegativeLiteralAssembles(t *testing.T) {
	source := `
		MOV R0,#-2147483648
		CMP R0,#-2147483648
	`
	p := compileAndRun(t, source)
	assertEqual(t, p.Registers.GetFlag(register.Z), true, "R0 should equal the negative literal it was compared against")
}

func TestBooleanLiteralsLowercase(t *testing.T) {
	source := "MOV R0,#true\nMOV R1,#false"
	p := compileAndRun(t, source)
	assertEqual(t, p.Registers.GetReg(register.R0).Int(), int32(1), "#true should assemble to 1")
	assertEqual(t, p.Registers.GetReg(register.R1).Int(), int32(0), "#false should assemble to 0")
}

func TestBooleanLiteralGarbageRejected(t *testing.T) {
	source := "MOV R0,#TXYZ"
	_, errs := Assemble[int32](source)
	if len(errs) != 1 {
		t.Fatalf("expected exactly one tokenizer error for a malformed boolean literal, got %v", errs)
	}
	var terr *TokenizerError
	if !errors.As(errs[0], &terr) {
		t.Fatalf("expected a *TokenizerError, got %T: %v", errs[0], errs[0])
	}
	assertEqual(t, terr.Kind, InvalidBooleanTrueLiteral, "wrong error kind for a malformed #T... literal")
}

func TestExplicitDecimalPrefixLiteral(t *testing.T) {
	source := "MOV R0,#0d42\nMOV R1,#42"
	p := compileAndRun(t, source)
	assertEqual(t, p.Registers.GetReg(register.R0).Int(), p.Registers.GetReg(register.R1).Int(), "#0d42 should equal #42")
}

func TestShiftAmountOutOfRangeRejected(t *testing.T) {
	for _, source := range []string{"MOV R0,#1\nSHL R0,#0", "MOV R0,#1\nSHL R0,#32"} {
		_, errs := Assemble[int32](source)
		if len(errs) == 0 {
			t.Fatalf("expected an error for an out-of-range shift amount in %q", source)
		}
	}
}

func TestLabelIndexDoesNotFitNarrowWord(t *testing.T) {
	var source string
	for i := 0; i < 200; i++ {
		source += "NOP\n"
	}
	source += ".past200\nNOP\nJMP .past200\n"
	_, errs := Assemble[int8](source)
	if len(errs) == 0 {
		t.Fatalf("expected an error for a label index that overflows an int8 word")
	}
	var perr *ParserError
	if !errors.As(errs[0], &perr) {
		t.Fatalf("expected a *ParserError, got %T: %v", errs[0], errs[0])
	}
	assertEqual(t, perr.Kind, LabelIndexToWordConversionFailed, "wrong error kind for an overflowing label index")
}
