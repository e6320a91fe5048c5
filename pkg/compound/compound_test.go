package compound

import (
	"testing"
	"time"

	"moneymarket/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var testParams = core.ReserveParams{
	MaxLTV:               7000,
	LiquidationThreshold: 8000,
	LiquidationBonus:     10500,
	ReserveFactor:        1000,
	OptimalUtilization:   8000,
	BaseRate:             200,
	OptimalRate:          1000,
	MaxRate:              10000,
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newReserve(symbol string, liquidity, debt string) *core.Reserve {
	return &core.Reserve{
		Symbol:            symbol,
		Precision:         8,
		ReserveParams:     testParams,
		TotalLiquidity:    d(liquidity),
		TotalDebt:         d(debt),
		TotalSupplyShares: d(liquidity),
		TotalBorrowShares: d(debt),
		ProtocolReserve:   decimal.Zero,
		AccruedAt:         time.Unix(1600000000, 0),
	}
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), append([]interface{}{"expected %s, got %s", expected, actual}, msgAndArgs...)...)
}
