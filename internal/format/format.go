// Package format renders response values for result tables.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholder marks a value the response did not carry. It is distinct from
// a rendered zero.
const Placeholder = "-"

var printer = message.NewPrinter(language.Korean)

// Won rounds v half away from zero to a whole won, groups the digits and
// appends the currency unit: 1234.6 → "1,235원".
func Won(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return printer.Sprintf("%d원", decimal.NewFromFloat(*v).Round(0).IntPart())
}

// Percent renders a ratio as a percentage with at most two decimals and no
// trailing zeros: 0.055 → "5.5%", 0.05236 → "5.24%".
func Percent(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return decimal.NewFromFloat(*v).Shift(2).Round(2).String() + "%"
}

// Years renders a whole number of years.
func Years(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return fmt.Sprintf("%d년", decimal.NewFromFloat(*v).Round(0).IntPart())
}

// Float returns a pointer to v, for building values inline.
func Float(v float64) *float64 {
	return &v
}

// Equal reports whether a and b are both absent or hold the same value.
func Equal(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// NonZero reports whether v is present and not zero.
func NonZero(v *float64) bool {
	return v != nil && *v != 0
}
