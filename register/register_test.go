package register

import (
	"testing"

	"procem/word"
)

func TestIncDecDoNotTouchFlags(t *testing.T) {
	r := New[int32]()
	r.SetFlag(Z, true)
	r.Inc(R0)
	if r.GetReg(R0).Int() != 1 {
		t.Fatalf("Inc should increment R0, got %d", r.GetReg(R0).Int())
	}
	if !r.GetFlag(Z) {
		t.Fatalf("Inc must never touch flags")
	}
	r.Dec(R0)
	if r.GetReg(R0).Int() != 0 {
		t.Fatalf("Dec should decrement R0 back to 0, got %d", r.GetReg(R0).Int())
	}
	if !r.GetFlag(Z) {
		t.Fatalf("Dec must never touch flags")
	}
}

func TestParseRegisterCaseInsensitive(t *testing.T) {
	for _, s := range []string{"r3", "R3"} {
		reg, err := ParseRegister(s)
		if err != nil {
			t.Fatalf("unexpected error parsing %q: %v", s, err)
		}
		if reg != R3 {
			t.Fatalf("expected R3 for %q, got %v", s, reg)
		}
	}
	if _, err := ParseRegister("r99"); err == nil {
		t.Fatalf("expected an error parsing an out-of-range register")
	}
}

func TestPCAndSPAccessors(t *testing.T) {
	r := New[int32]()
	r.SetReg(PC, word.New[int32](42))
	if r.PC().Int() != 42 {
		t.Fatalf("PC accessor should reflect SetReg(PC, ...)")
	}
}
