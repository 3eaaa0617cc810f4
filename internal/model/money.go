package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidDenomination is returned for coin values outside the accepted set.
	ErrInvalidDenomination = errors.New("invalid denomination")
	// ErrInvalidPrice is returned for prices outside [0.00, 9.99] or with more
	// than two fractional digits.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidAmount is returned for stock amounts outside [0, 99].
	ErrInvalidAmount = errors.New("invalid amount")
)

// Cents is the monetary base unit. All core arithmetic is integer cents;
// decimal conversion happens only at the API boundary.
type Cents int64

const (
	// MaxPriceCents is the upper price bound (9.99).
	MaxPriceCents Cents = 999
	// MaxStockAmount is the upper bound for any stock count.
	MaxStockAmount = 99
)

// Decimal returns the exact decimal representation (e.g. 65 -> 0.65).
func (c Cents) Decimal() decimal.Decimal { return decimal.New(int64(c), -2) }

func (c Cents) String() string { return c.Decimal().String() }

// MarshalJSON encodes cents as a plain decimal number, matching the wire
// format of the API (0.65, not 65).
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(c.Decimal().String()), nil
}

// UnmarshalJSON decodes a decimal number into cents, rejecting values with
// more than two fractional digits.
func (c *Cents) UnmarshalJSON(b []byte) error {
	v, err := ParseCents(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// ParseCents converts a decimal string into cents. It fails when the value is
// negative or carries sub-cent precision.
func ParseCents(s string) (Cents, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount %q is negative", s)
	}
	shifted := d.Shift(2)
	if !shifted.IsInteger() {
		return 0, fmt.Errorf("amount %q has sub-cent precision", s)
	}
	return Cents(shifted.IntPart()), nil
}

// ParsePrice parses and bound-checks an item price.
func ParsePrice(s string) (Cents, error) {
	c, err := ParseCents(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidPrice, err)
	}
	if err := ValidatePrice(c); err != nil {
		return 0, err
	}
	return c, nil
}

// ValidatePrice checks the [0.00, 9.99] price bound.
func ValidatePrice(c Cents) error {
	if c < 0 || c > MaxPriceCents {
		return fmt.Errorf("%w: %s out of [0.00, 9.99]", ErrInvalidPrice, c)
	}
	return nil
}

// ValidateAmount checks the [0, 99] stock bound.
func ValidateAmount(n int) error {
	if n < 0 || n > MaxStockAmount {
		return fmt.Errorf("%w: %d out of [0, 99]", ErrInvalidAmount, n)
	}
	return nil
}

// Denomination is one coin value from the fixed accepted set.
type Denomination Cents

const (
	Nickel  Denomination = 5
	Dime    Denomination = 10
	Quarter Denomination = 25
	Dollar  Denomination = 100
)

// Denominations lists the accepted coin values, largest first. The change
// planner depends on this order.
var Denominations = []Denomination{Dollar, Quarter, Dime, Nickel}

// Valid reports whether d is in the accepted set.
func (d Denomination) Valid() bool {
	switch d {
	case Nickel, Dime, Quarter, Dollar:
		return true
	}
	return false
}

// Cents returns the coin value in cents.
func (d Denomination) Cents() Cents { return Cents(d) }

func (d Denomination) String() string { return Cents(d).String() }

func (d Denomination) MarshalJSON() ([]byte, error) { return Cents(d).MarshalJSON() }

func (d *Denomination) UnmarshalJSON(b []byte) error {
	v, err := ParseDenomination(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDenomination converts a decimal string (e.g. "0.25") into a
// denomination, failing with ErrInvalidDenomination for values outside the
// accepted set.
func ParseDenomination(s string) (Denomination, error) {
	c, err := ParseCents(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidDenomination, err)
	}
	d := Denomination(c)
	if !d.Valid() {
		return 0, fmt.Errorf("%w: %s", ErrInvalidDenomination, c)
	}
	return d, nil
}
