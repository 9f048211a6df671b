package defaultset

import (
	"testing"

	"procem/processor"
	"procem/register"
	"procem/word"
)

func newTestProcessor(t *testing.T) *processor.Processor[int32] {
	t.Helper()
	return processor.New[int32](16)
}

func assertTrue(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestMovAndPushPop(t *testing.T) {
	p := newTestProcessor(t)
	Mov[int32](register.R0, ValueOperand[int32](word.New[int32](5))).Execute(p)
	assertTrue(t, p.Registers.GetReg(register.R0).Int() == 5, "R0 should hold 5 after Mov")

	Push[int32](RegisterOperand[int32](register.R0)).Execute(p)
	Pop[int32](register.R1).Execute(p)
	assertTrue(t, p.Registers.GetReg(register.R1).Int() == 5, "R1 should hold 5 after push/pop round trip")
}

func TestUnsignedArithmeticNeverTouchesFlags(t *testing.T) {
	p := newTestProcessor(t)
	p.Registers.SetFlag(register.Z, true)
	Mov[int32](register.R0, ValueOperand[int32](word.New[int32](1))).Execute(p)
	Add[int32](register.R0, ValueOperand[int32](word.New[int32](1)), false).Execute(p)
	assertTrue(t, p.Registers.GetReg(register.R0).Int() == 2, "unsigned add should still compute")
	assertTrue(t, p.Registers.GetFlag(register.Z) == true, "unsigned add must not touch the zero flag")
}

func TestSignedAddSetsZeroFlag(t *testing.T) {
	p := newTestProcessor(t)
	Mov[int32](register.R0, ValueOperand[int32](word.New[int32](-1))).Execute(p)
	Add[int32](register.R0, ValueOperand[int32](word.New[int32](1)), true).Execute(p)
	assertTrue(t, p.Registers.GetFlag(register.Z), "signed add to zero should set the zero flag")
}

func TestUnsignedIncDecNeverTouchFlags(t *testing.T) {
	p := newTestProcessor(t)
	p.Registers.SetFlag(register.S, true)
	Mov[int32](register.R0, ValueOperand[int32](word.New[int32](0))).Execute(p)
	Inc[int32](register.R0, false).Execute(p)
	assertTrue(t, p.Registers.GetReg(register.R0).Int() == 1, "unsigned Inc should increment")
	assertTrue(t, p.Registers.GetFlag(register.S), "unsigned Inc must not touch the signed flag")
	Dec[int32](register.R0, false).Execute(p)
	assertTrue(t, p.Registers.GetReg(register.R0).Int() == 0, "unsigned Dec should decrement")
	assertTrue(t, p.Registers.GetFlag(register.S), "unsigned Dec must not touch the signed flag")
}

func TestJumpConditionTruthTable(t *testing.T) {
	p := newTestProcessor(t)
	p.Registers.SetFlag(register.Z, true)
	p.Registers.SetFlag(register.S, false)
	assertTrue(t, Check(GreaterOrEqual, p), "Z=1,S=0 should satisfy GreaterOrEqual")
	assertTrue(t, !Check(Less, p), "Z=1,S=0 should not satisfy Less")
}

func TestCmpDiscardsResult(t *testing.T) {
	p := newTestProcessor(t)
	Mov[int32](register.R0, ValueOperand[int32](word.New[int32](5))).Execute(p)
	Cmp[int32](RegisterOperand[int32](register.R0), ValueOperand[int32](word.New[int32](5))).Execute(p)
	assertTrue(t, p.Registers.GetFlag(register.Z), "comparing equal values should set zero flag")
	assertTrue(t, p.Registers.GetReg(register.R0).Int() == 5, "Cmp must not modify its operand register")
}

func TestMultiplicationByRepeatedAdd(t *testing.T) {
	p := newTestProcessor(t)
	Mov[int32](register.R0, ValueOperand[int32](word.New[int32](0))).Execute(p)
	Mov[int32](register.R1, ValueOperand[int32](word.New[int32](5))).Execute(p)
	for i := 0; i < 2; i++ {
		Add[int32](register.R0, RegisterOperand[int32](register.R1), false).Execute(p)
	}
	assertTrue(t, p.Registers.GetReg(register.R0).Int() == 10, "5 added twice should equal 10")
}
