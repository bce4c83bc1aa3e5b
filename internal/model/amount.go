// Package model defines domain records for fiat ramps reconciliation.
package model

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits carried by Amount.
const Precision = 10

var (
	// ErrNegativeAmount is returned for literals below zero.
	ErrNegativeAmount = errors.New("amount is negative")
	// ErrAmountOverflow is returned when a literal does not fit into Amount.
	ErrAmountOverflow = errors.New("amount overflows ledger precision")
)

// Amount is an unsigned fixed-point value with Precision fractional digits.
type Amount uint64

// ParseAmount converts a decimal literal such as "449.00" into ledger precision.
// Fraction digits beyond Precision are clipped, missing ones are zero-padded.
func ParseAmount(literal string) (Amount, error) {
	d, err := decimal.NewFromString(literal)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", literal, err)
	}
	return AmountFromDecimal(d)
}

// AmountFromDecimal scales d to ledger precision.
func AmountFromDecimal(d decimal.Decimal) (Amount, error) {
	if d.IsNegative() {
		return 0, ErrNegativeAmount
	}
	scaled := d.Shift(Precision).Truncate(0).BigInt()
	if !scaled.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return Amount(scaled.Uint64()), nil
}

// Decimal renders the amount back into a decimal with Precision fractional digits.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(a)), -Precision)
}

// IsZero reports whether the amount is zero.
func (a Amount) IsZero() bool {
	return a == 0
}

func (a Amount) String() string {
	return a.Decimal().String()
}
