package number

import (
	"github.com/shopspring/decimal"
)

// BPS basis points in one
const BPS = 10000

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

func Floor(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Floor().Shift(-precision)
}

// QuoFloor exact a / b rounded toward negative infinity at precision
func QuoFloor(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, r := a.QuoRem(b, precision)
	if r.Sign() != 0 && r.Sign() != b.Sign() {
		q = q.Sub(decimal.New(1, -precision))
	}

	return q
}

// QuoCeil exact a / b rounded toward positive infinity at precision
func QuoCeil(a, b decimal.Decimal, precision int32) decimal.Decimal {
	q, r := a.QuoRem(b, precision)
	if r.Sign() != 0 && r.Sign() == b.Sign() {
		q = q.Add(decimal.New(1, -precision))
	}

	return q
}

// MulBps returns d * bps / 10000 without rounding
func MulBps(d decimal.Decimal, bps int64) decimal.Decimal {
	return d.Mul(decimal.NewFromInt(bps)).Shift(-4)
}

// Min returns the smallest of the given values
func Min(first decimal.Decimal, rest ...decimal.Decimal) decimal.Decimal {
	return decimal.Min(first, rest...)
}
