package compound

import (
	"errors"
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func btc(s string) Asset {
	return NewAsset(d(s), "BTC", 8)
}

func TestSharesFromAmount(t *testing.T) {
	t.Run("empty pool", func(t *testing.T) {
		shares, err := SharesFromAmountFloor(btc("10"), btc("0"), btc("0"))
		require.Nil(t, err)
		assertDecimal(t, "10", shares.Amount)

		amount, err := AmountFromSharesFloor(btc("10"), btc("0"), btc("0"))
		require.Nil(t, err)
		assertDecimal(t, "0", amount.Amount)
	})

	t.Run("rounding", func(t *testing.T) {
		floor, err := SharesFromAmountFloor(btc("1"), btc("100"), btc("110"))
		require.Nil(t, err)
		assertDecimal(t, "0.9090909", floor.Amount)

		ceil, err := SharesFromAmountCeil(btc("1"), btc("100"), btc("110"))
		require.Nil(t, err)
		assertDecimal(t, "0.90909091", ceil.Amount)

		exact, err := SharesFromAmountCeil(btc("11"), btc("100"), btc("110"))
		require.Nil(t, err)
		assertDecimal(t, "10", exact.Amount)

		amount, err := AmountFromSharesFloor(btc("10"), btc("100"), btc("110"))
		require.Nil(t, err)
		assertDecimal(t, "11", amount.Amount)
	})

	t.Run("round trip never gains", func(t *testing.T) {
		ts, ta := btc("100"), btc("110.12345678")
		for _, s := range []string{"0.00000001", "0.3", "1", "7.77777777", "50"} {
			shares, err := SharesFromAmountFloor(btc(s), ts, ta)
			require.Nil(t, err)

			ts2, _ := ts.Add(shares)
			ta2, _ := ta.Add(btc(s))
			back, err := AmountFromSharesFloor(shares, ts2, ta2)
			require.Nil(t, err)
			assert.True(t, back.Amount.LessThanOrEqual(d(s)), s)
		}
	})

	t.Run("symbol mismatch", func(t *testing.T) {
		_, err := SharesFromAmountFloor(NewAsset(d("1"), "ETH", 8), btc("1"), btc("1"))
		assert.True(t, errors.Is(err, core.ErrSymbolMismatch))
	})

	t.Run("negative", func(t *testing.T) {
		_, err := SharesFromAmountFloor(btc("-1"), btc("1"), btc("1"))
		assert.True(t, errors.Is(err, core.ErrNegative))
	})
}

func TestAssetArithmetic(t *testing.T) {
	_, err := btc("1").Sub(btc("2"))
	assert.True(t, errors.Is(err, core.ErrNegative))

	_, err = NewAsset(MaxAmount(8), "BTC", 8).Add(btc("0.00000001"))
	assert.True(t, errors.Is(err, core.ErrOverflow))

	sum, err := btc("1.5").Add(btc("0.25"))
	require.Nil(t, err)
	assert.Equal(t, "1.75000000 BTC", sum.String())
}
