package kernel

import (
	"fmt"
	"math"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrMoneyIsNotConstructed indicates a zero-value Money that bypassed the
// constructor functions.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"Money must be created via NewMoney or NewMoneyFromFloat")

// Money is a value object holding a monetary amount as exact integer cents.
// Line item prices are snapshotted as Money at order creation time, so later
// catalog price changes never affect an existing order.
//
// Money is immutable; arithmetic methods return new values.
type Money struct {
	cents int64

	guard guard.ConstructorGuard
}

// NewMoney creates a Money from an amount in cents.
// Negative amounts are rejected.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money", fmt.Errorf("%d cents is negative", cents))
	}
	return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
}

// NewMoneyFromFloat creates a Money from a decimal amount such as 89.99.
// The amount is rounded half-up to whole cents, so 103.989 becomes 103.99.
func NewMoneyFromFloat(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Money{}, errs.NewValueIsInvalidError("money amount is not a finite number")
	}
	return NewMoney(int64(math.Round(amount * 100)))
}

// Cents returns the amount in whole cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Float64 returns the amount as a decimal number of currency units.
func (m Money) Float64() float64 {
	return float64(m.cents) / 100
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents, guard: guard.NewConstructorGuard()}
}

// Multiply returns the amount scaled by an integer quantity.
func (m Money) Multiply(qty int) Money {
	return Money{cents: m.cents * int64(qty), guard: guard.NewConstructorGuard()}
}

// Percent returns the given percentage of the amount, rounded half-up to
// whole cents. Used for tax calculation: 10 percent of 89.99 is 9.00.
func (m Money) Percent(p float64) Money {
	return Money{
		cents: int64(math.Round(float64(m.cents) * p / 100)),
		guard: guard.NewConstructorGuard(),
	}
}

// IsEqual reports whether two amounts are the same.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// String formats the amount with two decimal places.
func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Float64())
}

// Validate returns ErrMoneyIsNotConstructed for the zero value.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
