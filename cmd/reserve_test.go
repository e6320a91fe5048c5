package cmd

import (
	"testing"

	"moneymarket/core"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsFromFlags(t *testing.T) {
	flags := pflag.NewFlagSet("reserve", pflag.ContinueOnError)
	addParamsFlags(flags)
	require.NoError(t, flags.Parse([]string{"--max-ltv", "7000", "--threshold=8000", "--r0", "0"}))

	t.Run("defaults kept", func(t *testing.T) {
		p := paramsFromFlags(flags, defaultParams)
		assert.EqualValues(t, 7000, p.MaxLTV)
		assert.EqualValues(t, 8000, p.LiquidationThreshold)
		assert.EqualValues(t, 10500, p.LiquidationBonus)
		assert.EqualValues(t, 8000, p.OptimalUtilization)
	})

	t.Run("only changed flags override", func(t *testing.T) {
		base := core.ReserveParams{MaxLTV: 5000, BaseRate: 100, MaxRate: 9000}
		p := paramsFromFlags(flags, base)
		assert.EqualValues(t, 7000, p.MaxLTV)
		assert.EqualValues(t, 0, p.BaseRate)
		assert.EqualValues(t, 9000, p.MaxRate)
		assert.EqualValues(t, 5000, base.MaxLTV)
	})
}
