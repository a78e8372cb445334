package core

import "math/bits"

// Checked arithmetic for balance and reward math. Every mutation of a stored
// amount goes through these; silent wraparound is never acceptable where
// balances are touched.

// CheckedAdd returns a+b, or ErrArithmetic on overflow.
func CheckedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrArithmetic
	}
	return sum, nil
}

// CheckedSub returns a-b, or ErrArithmetic on underflow.
func CheckedSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrArithmetic
	}
	return diff, nil
}

// CheckedMul returns a*b, or ErrArithmetic on overflow.
func CheckedMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrArithmetic
	}
	return lo, nil
}

// CheckedDiv returns a/b, or ErrArithmetic when b is zero.
func CheckedDiv(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrArithmetic
	}
	return a / b, nil
}
