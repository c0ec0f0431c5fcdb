package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Prices are stored as int64 minor units (cents). Decimal is used at the
// edges: parsing operator input and percentage adjustments, where float
// rounding would drift.

var centsFactor = decimal.NewFromInt(100)

// ParsePrice converts a money string like "4.99" into cents.
// Rejects negative amounts, garbage, and sub-cent precision.
func ParsePrice(s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", s)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("price must be >= 0, got %s", s)
	}
	c := d.Mul(centsFactor)
	if !c.Equal(c.Truncate(0)) {
		return 0, fmt.Errorf("price %q has more than 2 decimal places", s)
	}
	return c.IntPart(), nil
}

// FormatPrice renders cents as a plain decimal string ("499" -> "4.99").
func FormatPrice(cents int64) string {
	return decimal.NewFromInt(cents).Div(centsFactor).StringFixed(2)
}

// ApplyPercent returns price * (1 + pct/100), rounded half-up to a cent.
func ApplyPercent(cents int64, pct decimal.Decimal) int64 {
	p := decimal.NewFromInt(cents)
	factor := decimal.NewFromInt(1).Add(pct.Div(decimal.NewFromInt(100)))
	return p.Mul(factor).Round(0).IntPart()
}

// ApplyFixed returns price + delta, where delta is a money amount in major
// units ("-2" means minus 2.00). Rounded half-up to a cent.
func ApplyFixed(cents int64, delta decimal.Decimal) int64 {
	return decimal.NewFromInt(cents).Add(delta.Mul(centsFactor)).Round(0).IntPart()
}
