package positions

import "github.com/shopspring/decimal"

var thousand = decimal.NewFromInt(1000)

// Round rounds a number for display, keeping the digits that matter:
// no decimals from 1000 up, 4 decimals from 1 up, and for smaller numbers two
// significant digits after the leading zeros (0.000123456 -> 0.00012).
func Round(d decimal.Decimal) decimal.Decimal {
	abs := d.Abs()
	switch {
	case abs.IsZero():
		return d
	case abs.GreaterThanOrEqual(thousand):
		return d.Round(0)
	case abs.GreaterThanOrEqual(decimal.NewFromInt(1)):
		return d.Round(4)
	}
	// count leading zeros of the fractional part.
	zeros := int32(0)
	for x := abs.Shift(1); x.LessThan(decimal.NewFromInt(1)); x = x.Shift(1) {
		zeros++
	}
	return d.Round(zeros + 2)
}
