package program

import "testing"

func TestFetchOutOfBoundsIsTheTerminationSignal(t *testing.T) {
	p := New([]int{1, 2, 3})
	if _, err := p.Fetch(1); err != nil {
		t.Fatalf("unexpected error fetching in-range instruction: %v", err)
	}
	_, err := p.Fetch(3)
	if err == nil {
		t.Fatalf("expected an out-of-bounds error fetching past the end of the program")
	}
	if _, ok := err.(*OutOfBoundsError); !ok {
		t.Fatalf("expected *OutOfBoundsError, got %T", err)
	}
}
