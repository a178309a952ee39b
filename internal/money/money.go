// Package money parses user supplied amounts and sums them without the
// rounding drift of repeated float64 addition.
//
// Amounts are stored as float64 on the records; arithmetic goes through
// shopspring/decimal and is converted back at the edge.
package money

import (
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalid is returned when a value is not a decimal number or lies
// outside ±MaxAmount.
var ErrInvalid = errors.New("invalid amount")

// MaxAmount bounds a single amount so that sums stay finite.
const MaxAmount = 1e15

// Parse reads a decimal number such as "12", "12.5" or "1e3".
func Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, ErrInvalid
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return 0, ErrInvalid
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) || math.Abs(v) > MaxAmount {
		return 0, ErrInvalid
	}
	return v, nil
}

// Total accumulates amounts. The zero value is an empty total.
type Total struct {
	sum decimal.Decimal
}

// Add adds v to the total.
func (t *Total) Add(v float64) {
	t.sum = t.sum.Add(decimal.NewFromFloat(v))
}

// Float64 returns the accumulated value.
func (t Total) Float64() float64 {
	return t.sum.InexactFloat64()
}

// Sub returns a minus b computed in decimal.
func Sub(a, b Total) float64 {
	return a.sum.Sub(b.sum).InexactFloat64()
}
