package kernel

import (
	"fmt"

	"orders/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyScale is the number of minor-unit digits carried by every amount.
// Persistence stores amounts as numeric(12,2), so anything finer would drift.
const MoneyScale = 2

// Money is an exact, non-negative monetary amount with two decimal places.
// It is backed by github.com/shopspring/decimal, so sums and products never
// accumulate binary floating point error.
//
// The zero value is a valid amount of 0.00.
//
// Example:
//
//	price, err := kernel.MoneyFromString("10.50")
//	if err != nil {
//	    return err
//	}
//	line := price.Multiply(2) // 21.00
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns 0.00.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates that d is non-negative and has no more than two decimal places.
func NewMoney(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is negative", d.String()))
	}
	if !d.Equal(d.Round(MoneyScale)) {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount",
			fmt.Errorf("%s has more than %d decimal places", d.String(), MoneyScale),
		)
	}
	return Money{amount: d}, nil
}

// MoneyFromString parses a decimal string such as "15.25".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoneyFromString is MoneyFromString for literals known to be valid; it panics otherwise.
func MustMoneyFromString(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Multiply returns m × factor.
func (m Money) Multiply(factor int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(factor)))}
}

// Equal compares amounts numerically, so 36.25 equals 36.250.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(MoneyScale)
}
