// Package safe provides checked unsigned arithmetic.
package safe

import (
	"errors"
	"fmt"
	"math/bits"
)

var (
	// ErrOverflow is returned when a sum does not fit into 64 bits.
	ErrOverflow = errors.New("integer overflow")
	// ErrUnderflow is returned when a subtraction would go below zero.
	ErrUnderflow = errors.New("integer underflow")
)

// Add returns a+b or ErrOverflow.
func Add[T ~uint64](a, b T) (T, error) {
	sum, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, a, b)
	}
	return T(sum), nil
}

// Sub returns a-b or ErrUnderflow.
func Sub[T ~uint64](a, b T) (T, error) {
	diff, borrow := bits.Sub64(uint64(a), uint64(b), 0)
	if borrow != 0 {
		return 0, fmt.Errorf("%w: %d - %d", ErrUnderflow, a, b)
	}
	return T(diff), nil
}
