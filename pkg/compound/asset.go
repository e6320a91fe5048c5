package compound

import (
	"math"

	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// Asset token amount tagged with its symbol and precision
type Asset struct {
	Amount    decimal.Decimal
	Symbol    string
	Precision int32
}

// NewAsset new asset quantised to precision, rounding down
func NewAsset(amount decimal.Decimal, symbol string, precision int32) Asset {
	return Asset{
		Amount:    number.Floor(amount, precision),
		Symbol:    symbol,
		Precision: precision,
	}
}

// ReserveAsset amount in the reserve's asset
func ReserveAsset(r *core.Reserve, amount decimal.Decimal) Asset {
	return NewAsset(amount, r.Symbol, r.Precision)
}

// MaxAmount largest representable amount at precision, math.MaxInt64 base units
func MaxAmount(precision int32) decimal.Decimal {
	return decimal.NewFromInt(math.MaxInt64).Shift(-precision)
}

// Unit the smallest amount at precision
func Unit(precision int32) decimal.Decimal {
	return decimal.New(1, -precision)
}

func (a Asset) IsZero() bool {
	return a.Amount.IsZero()
}

func (a Asset) String() string {
	return a.Amount.StringFixed(a.Precision) + " " + a.Symbol
}

// with same symbol and precision as a
func (a Asset) with(amount decimal.Decimal) Asset {
	return Asset{Amount: amount, Symbol: a.Symbol, Precision: a.Precision}
}

// Add a + b
func (a Asset) Add(b Asset) (Asset, error) {
	if err := a.sameAs(b); err != nil {
		return a, err
	}

	return a.with(a.Amount.Add(b.Amount)).check()
}

// Sub a - b, never negative
func (a Asset) Sub(b Asset) (Asset, error) {
	if err := a.sameAs(b); err != nil {
		return a, err
	}

	return a.with(a.Amount.Sub(b.Amount)).check()
}

func (a Asset) sameAs(b Asset) error {
	return Require(
		a.Symbol == b.Symbol && a.Precision == b.Precision,
		core.ErrSymbolMismatch,
		"symbol mismatch: %s vs %s", a.Symbol, b.Symbol,
	)
}

func (a Asset) check() (Asset, error) {
	if a.Amount.IsNegative() {
		return a, core.Errorf(core.ErrNegative, "negative amount %s", a)
	}

	if a.Amount.GreaterThan(MaxAmount(a.Precision)) {
		return a, core.Errorf(core.ErrOverflow, "amount %s out of range", a)
	}

	return a, nil
}
