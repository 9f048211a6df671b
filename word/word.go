// Package word implements the generic, wrapping, two's-complement word
// type the rest of the emulator is parameterised over.
package word

import (
	"math"
	"math/big"
	"strconv"
)

// Integer constrains the underlying storage of a Word: any of Go's
// signed integer kinds. There is no 128-bit native kind in Go, so the
// widest width offered here is int64.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// Word wraps a fixed-width signed integer and gives it wrapping
// arithmetic, overflow/carry detection, bitwise and rotate operations.
type Word[T Integer] struct {
	val T
}

// New builds a Word from a raw value of its underlying width.
func New[T Integer](v T) Word[T] {
	return Word[T]{val: v}
}

// Zero returns the additive identity for T.
func Zero[T Integer]() Word[T] {
	return Word[T]{}
}

// One returns the multiplicative identity for T.
func One[T Integer]() Word[T] {
	return Word[T]{val: 1}
}

// Int returns the raw underlying value.
func (w Word[T]) Int() T {
	return w.val
}

// Int64 widens the underlying value to int64, useful for range checks
// against a value whose own width isn't known statically.
func (w Word[T]) Int64() int64 {
	return int64(w.val)
}

func (w Word[T]) String() string {
	return strconv.FormatInt(int64(w.val), 10)
}

// BitSize reports the width, in bits, of T.
func BitSize[T Integer]() int {
	return bitSize[T]()
}

func bitSize[T Integer]() int {
	var z T
	switch any(z).(type) {
	case int8:
		return 8
	case int16:
		return 16
	case int32:
		return 32
	case int64:
		return 64
	default:
		return strconv.IntSize
	}
}

func minMax[T Integer]() (int64, int64) {
	switch bitSize[T]() {
	case 8:
		return math.MinInt8, math.MaxInt8
	case 16:
		return math.MinInt16, math.MaxInt16
	case 32:
		return math.MinInt32, math.MaxInt32
	default:
		return math.MinInt64, math.MaxInt64
	}
}

// FromI32 performs a wrapping truncating conversion from a 32-bit
// literal value into T, mirroring the macro-generated `From<i32>` impls
// in the original word model.
func FromI32[T Integer](v int32) Word[T] {
	switch bitSize[T]() {
	case 8:
		return Word[T]{val: T(int8(v))}
	case 16:
		return Word[T]{val: T(int16(v))}
	case 32:
		return Word[T]{val: T(v)}
	default:
		return Word[T]{val: T(int64(v))}
	}
}

// FromStrRadix parses s in the given radix (2, 8, 10 or 16) into a Word.
func FromStrRadix[T Integer](s string, radix int) (Word[T], error) {
	v, err := strconv.ParseInt(s, radix, bitSize[T]())
	if err != nil {
		return Word[T]{}, err
	}
	return Word[T]{val: T(v)}, nil
}

func toUnsigned[T Integer](v T) *big.Int {
	bits := bitSize[T]()
	x := big.NewInt(int64(v))
	if x.Sign() < 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
		x.Add(x, mod)
	}
	return x
}

func fromUnsigned[T Integer](u *big.Int, bits int) Word[T] {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	v := new(big.Int).Mod(u, mod)
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if v.Cmp(half) >= 0 {
		v.Sub(v, mod)
	}
	return Word[T]{val: T(v.Int64())}
}

// Add wraps on overflow, as Go's native fixed-width integer arithmetic
// already does.
func (w Word[T]) Add(other Word[T]) Word[T] { return Word[T]{val: w.val + other.val} }

// Sub wraps on overflow.
func (w Word[T]) Sub(other Word[T]) Word[T] { return Word[T]{val: w.val - other.val} }

// Mul wraps on overflow.
func (w Word[T]) Mul(other Word[T]) Word[T] { return Word[T]{val: w.val * other.val} }

// Div panics on division by zero, matching native Go integer division.
func (w Word[T]) Div(other Word[T]) Word[T] { return Word[T]{val: w.val / other.val} }

// Rem panics on division by zero, matching native Go integer division.
func (w Word[T]) Rem(other Word[T]) Word[T] { return Word[T]{val: w.val % other.val} }

// OverflowingAdd returns the wrapped sum and whether it overflowed T's range.
func (w Word[T]) OverflowingAdd(other Word[T]) (Word[T], bool) {
	lo, hi := minMax[T]()
	sum := new(big.Int).Add(big.NewInt(int64(w.val)), big.NewInt(int64(other.val)))
	overflow := sum.Cmp(big.NewInt(lo)) < 0 || sum.Cmp(big.NewInt(hi)) > 0
	return w.Add(other), overflow
}

// OverflowingSub returns the wrapped difference and whether it overflowed T's range.
func (w Word[T]) OverflowingSub(other Word[T]) (Word[T], bool) {
	lo, hi := minMax[T]()
	diff := new(big.Int).Sub(big.NewInt(int64(w.val)), big.NewInt(int64(other.val)))
	overflow := diff.Cmp(big.NewInt(lo)) < 0 || diff.Cmp(big.NewInt(hi)) > 0
	return w.Sub(other), overflow
}

// OverflowingMul returns the wrapped product and whether it overflowed T's range.
func (w Word[T]) OverflowingMul(other Word[T]) (Word[T], bool) {
	lo, hi := minMax[T]()
	prod := new(big.Int).Mul(big.NewInt(int64(w.val)), big.NewInt(int64(other.val)))
	overflow := prod.Cmp(big.NewInt(lo)) < 0 || prod.Cmp(big.NewInt(hi)) > 0
	return w.Mul(other), overflow
}

// OverflowingDiv returns the quotient and whether the division overflowed
// T's range (the MIN / -1 case; division by zero still panics).
func (w Word[T]) OverflowingDiv(other Word[T]) (Word[T], bool) {
	lo, _ := minMax[T]()
	if int64(w.val) == lo && int64(other.val) == -1 {
		return w, true
	}
	return w.Div(other), false
}

// CheckCarryAdd reports whether adding other to w produces a carry out
// of T's bit width when both operands are reinterpreted as unsigned.
func (w Word[T]) CheckCarryAdd(other Word[T]) bool {
	bits := bitSize[T]()
	sum := new(big.Int).Add(toUnsigned(w.val), toUnsigned(other.val))
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return sum.Cmp(limit) >= 0
}

// CheckCarrySub reports whether subtracting other from w borrows, when
// both operands are reinterpreted as unsigned.
func (w Word[T]) CheckCarrySub(other Word[T]) bool {
	return toUnsigned(w.val).Cmp(toUnsigned(other.val)) < 0
}

// CheckCarryMul reports whether multiplying w by other produces a carry
// out of T's bit width when both operands are reinterpreted as unsigned.
func (w Word[T]) CheckCarryMul(other Word[T]) bool {
	bits := bitSize[T]()
	prod := new(big.Int).Mul(toUnsigned(w.val), toUnsigned(other.val))
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return prod.Cmp(limit) >= 0
}

// CheckCarryDiv mirrors the signed division overflow check: only the
// MIN / -1 case ever sets carry for division.
func (w Word[T]) CheckCarryDiv(other Word[T]) bool {
	_, overflow := w.OverflowingDiv(other)
	return overflow
}

func (w Word[T]) And(other Word[T]) Word[T] { return Word[T]{val: w.val & other.val} }
func (w Word[T]) Or(other Word[T]) Word[T]  { return Word[T]{val: w.val | other.val} }
func (w Word[T]) Xor(other Word[T]) Word[T] { return Word[T]{val: w.val ^ other.val} }
func (w Word[T]) Not() Word[T]              { return Word[T]{val: ^w.val} }

// Shl is a wrapping logical left shift.
func (w Word[T]) Shl(by Word[T]) Word[T] {
	bits := bitSize[T]()
	return Word[T]{val: w.val << (uint(by.val) % uint(bits))}
}

// Shr is a logical (zero-filling) right shift, unlike Go's native
// arithmetic (sign-extending) shift on signed integers.
func (w Word[T]) Shr(by Word[T]) Word[T] {
	bits := bitSize[T]()
	u := toUnsigned(w.val)
	u.Rsh(u, uint(by.val)%uint(bits))
	return fromUnsigned[T](u, bits)
}

// RotateLeft rotates the bit pattern left by n bits, modulo the width of T.
func (w Word[T]) RotateLeft(n uint32) Word[T] {
	bits := uint(bitSize[T]())
	shift := uint(n) % bits
	u := toUnsigned(w.val)
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	left := new(big.Int).Lsh(u, shift)
	left.Mod(left, mod)
	right := new(big.Int).Rsh(u, bits-shift)
	result := new(big.Int).Or(left, right)
	return fromUnsigned[T](result, int(bits))
}

// RotateRight rotates the bit pattern right by n bits, modulo the width of T.
func (w Word[T]) RotateRight(n uint32) Word[T] {
	bits := uint(bitSize[T]())
	shift := uint(n) % bits
	u := toUnsigned(w.val)
	mod := new(big.Int).Lsh(big.NewInt(1), bits)
	right := new(big.Int).Rsh(u, shift)
	left := new(big.Int).Lsh(u, bits-shift)
	left.Mod(left, mod)
	result := new(big.Int).Or(left, right)
	return fromUnsigned[T](result, int(bits))
}

// Cmp returns -1, 0 or 1 as w is less than, equal to, or greater than other.
func (w Word[T]) Cmp(other Word[T]) int {
	switch {
	case w.val < other.val:
		return -1
	case w.val > other.val:
		return 1
	default:
		return 0
	}
}

// IsZero reports whether the word holds the zero value.
func (w Word[T]) IsZero() bool { return w.val == 0 }

// Negative reports whether the word's signed value is below zero.
func (w Word[T]) Negative() bool { return w.val < 0 }
