package compound

import (
	"testing"
	"time"

	"moneymarket/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUtilization(t *testing.T) {
	assertDecimal(t, "0", Utilization(newReserve("BTC", "0", "0")))
	assertDecimal(t, "0.5", Utilization(newReserve("BTC", "100", "50")))
	assertDecimal(t, "1", Utilization(newReserve("BTC", "100", "120")))
}

func TestBorrowRate(t *testing.T) {
	cases := map[string]string{
		"0":   "200",
		"0.4": "600",
		"0.8": "1000",
		"0.9": "5500",
		"1":   "10000",
	}

	for u, rate := range cases {
		t.Run(u, func(t *testing.T) {
			assertDecimal(t, rate, BorrowRate(testParams, d(u)))
		})
	}

	t.Run("continuous at kink", func(t *testing.T) {
		below := BorrowRate(testParams, d("0.79999999"))
		at := BorrowRate(testParams, d("0.8"))
		above := BorrowRate(testParams, d("0.80000001"))

		assert.True(t, below.LessThan(at))
		assert.True(t, at.LessThan(above))
		assert.True(t, above.Sub(at).LessThan(d("0.01")))
		assert.True(t, at.Sub(below).LessThan(d("0.01")))
	})

	t.Run("optimal utilization zero", func(t *testing.T) {
		params := testParams
		params.OptimalUtilization = 0
		assertDecimal(t, "1000", BorrowRate(params, decimal.Zero))
		assertDecimal(t, "5500", BorrowRate(params, d("0.5")))
	})

	t.Run("optimal utilization one", func(t *testing.T) {
		params := testParams
		params.OptimalUtilization = 10000
		assertDecimal(t, "1000", BorrowRate(params, d("1")))
	})
}

func TestSupplyRate(t *testing.T) {
	// 10% borrow rate x 0.8 utilization x 0.9
	assertDecimal(t, "720", SupplyRate(newReserve("BTC", "1000", "800")))
	assertDecimal(t, "0", SupplyRate(newReserve("BTC", "1000", "0")))
}

func TestInterest(t *testing.T) {
	assertDecimal(t, "80", Interest(d("800"), d("1000"), SecondsPerYear, 8))
	assertDecimal(t, "0", Interest(d("1"), d("1"), 1, 8))
	assertDecimal(t, "0", Interest(d("800"), d("1000"), 0, 8))
}

func TestAccrue(t *testing.T) {
	year := time.Duration(SecondsPerYear) * time.Second

	t.Run("one year", func(t *testing.T) {
		r := newReserve("BTC", "1000", "800")
		now := r.AccruedAt.Add(year)
		next := Accrue(r, now)

		assertDecimal(t, "880", next.TotalDebt)
		assertDecimal(t, "1072", next.TotalLiquidity)
		assertDecimal(t, "8", next.ProtocolReserve)
		assert.Equal(t, now, next.AccruedAt)

		// input untouched
		assertDecimal(t, "800", r.TotalDebt)
		assertDecimal(t, "1000", r.TotalLiquidity)
		assert.NotEqual(t, now, r.AccruedAt)
	})

	t.Run("time not advanced", func(t *testing.T) {
		r := newReserve("BTC", "1000", "800")
		next := Accrue(r, r.AccruedAt.Add(-time.Hour))
		assert.Equal(t, *r, *next)
	})

	t.Run("no debt", func(t *testing.T) {
		r := newReserve("BTC", "1000", "0")
		now := r.AccruedAt.Add(time.Hour)
		next := Accrue(r, now)
		assertDecimal(t, "1000", next.TotalLiquidity)
		assertDecimal(t, "0", next.TotalDebt)
		assert.Equal(t, now, next.AccruedAt)
	})

	t.Run("split compounds", func(t *testing.T) {
		r := newReserve("BTC", "1000", "800")
		half := r.AccruedAt.Add(year / 2)
		end := r.AccruedAt.Add(year)

		once := Accrue(r, end)
		twice := Accrue(Accrue(r, half), end)

		assert.True(t, twice.TotalDebt.GreaterThanOrEqual(once.TotalDebt))
		assert.True(t, twice.TotalLiquidity.GreaterThanOrEqual(once.TotalLiquidity))
	})

	t.Run("conservation", func(t *testing.T) {
		r := newReserve("BTC", "1234.56789012", "987.65432101")
		next := Accrue(r, r.AccruedAt.Add(17*24*time.Hour))

		interest := next.TotalDebt.Sub(r.TotalDebt)
		credited := next.TotalLiquidity.Sub(r.TotalLiquidity).Add(next.ProtocolReserve.Sub(r.ProtocolReserve))
		assert.True(t, interest.IsPositive())
		assert.True(t, interest.Equal(credited))
	})

	t.Run("saturated", func(t *testing.T) {
		limit := MaxAmount(8)
		r := newReserve("BTC", "0", "0")
		r.TotalLiquidity = limit
		r.TotalDebt = limit.Sub(d("1"))
		r.TotalSupplyShares = limit
		r.TotalBorrowShares = r.TotalDebt

		next := Accrue(r, r.AccruedAt.Add(year))
		assert.True(t, next.TotalLiquidity.LessThanOrEqual(limit))
		assert.True(t, next.TotalDebt.LessThanOrEqual(limit))
	})
}

func TestReserveAvailable(t *testing.T) {
	assertDecimal(t, "200", newReserve("BTC", "1000", "800").Available())
	assertDecimal(t, "0", (&core.Reserve{TotalLiquidity: d("1"), TotalDebt: d("2")}).Available())
}
