package stack

import (
	"testing"

	"procem/word"
)

func TestReadWriteRoundTrip(t *testing.T) {
	s := New[int32](4)
	s.Write(word.New[int32](2), word.New[int32](99))
	if got := s.Read(word.New[int32](2)); got.Int() != 99 {
		t.Fatalf("expected 99, got %d", got.Int())
	}
}

func TestOutOfBoundsPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected an out-of-bounds read to panic")
		}
	}()
	s := New[int32](2)
	s.Read(word.New[int32](5))
}
