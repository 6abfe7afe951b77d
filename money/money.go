package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Scale is the fixed-point multiplier applied to every price, cash amount
// and P&L value held by the engine. $0.10 is stored as 1,000,000. Keeping
// money in the scaled integer domain removes floating point drift from
// accumulated sums.
const Scale int64 = 10000000

// DefaultPrecision is the number of decimal places used when displaying a
// price without an explicit precision.
const DefaultPrecision = 6

var scaleDec = decimal.NewFromInt(Scale)

// Price is a fixed-point money value. All arithmetic on Price values is
// integer arithmetic; division truncates toward zero.
type Price int64

// FromString parses a decimal string such as "239.08" into a Price.
func FromString(s string) (Price, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("cannot parse price %q: %w", s, err)
	}
	return FromDecimal(d), nil
}

// FromFloat64 converts a float into a Price. The float is interpreted at its
// shortest decimal representation, so FromFloat64(239.08) is exact.
func FromFloat64(f float64) Price {
	return FromDecimal(decimal.NewFromFloat(f))
}

// FromInt64 converts a whole number of currency units into a Price.
func FromInt64(i int64) Price {
	return Price(i * Scale)
}

// FromDecimal converts an arbitrary precision decimal into a Price,
// truncating anything beyond the scale's resolution.
func FromDecimal(d decimal.Decimal) Price {
	return Price(d.Mul(scaleDec).IntPart())
}

// Decimal returns the unscaled decimal value for presentation or for
// sizing math. It must never be fed back into the integer accounting.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(int64(p), 0).Div(scaleDec)
}

// Float64 returns the unscaled value as a float, for display only.
func (p Price) Float64() float64 {
	return float64(p) / float64(Scale)
}

// Display renders the price rounded to dp decimal places.
func (p Price) Display(dp int) string {
	return p.Decimal().Round(int32(dp)).StringFixed(int32(dp))
}

// String implements fmt.Stringer using the default precision.
func (p Price) String() string {
	return p.Display(DefaultPrecision)
}

// MulQty multiplies the price by an integer quantity, staying in the
// scaled domain.
func (p Price) MulQty(q int64) Price {
	return p * Price(q)
}
