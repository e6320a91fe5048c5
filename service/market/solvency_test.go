package market

import (
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// each accepted action leaves alice solvent, the rejected ones change nothing
func TestSolventAfterEachAction(t *testing.T) {
	f := newFixture(t)
	f.mustDo(core.ActionTypeSupply, "bob", "USDT", "10000")

	steps := []struct {
		name   string
		price  string
		typ    core.ActionType
		symbol string
		amount string
		code   core.ErrorCode
		debt   string
	}{
		{name: "supply collateral", typ: core.ActionTypeSupply, symbol: "BTC", amount: "10", debt: "0"},
		{name: "borrow", typ: core.ActionTypeBorrow, symbol: "USDT", amount: "500", debt: "500"},
		{name: "borrow past max ltv", typ: core.ActionTypeBorrow, symbol: "USDT", amount: "300", code: core.ErrLTVExceeded, debt: "500"},
		{name: "withdraw below threshold", typ: core.ActionTypeWithdraw, symbol: "BTC", amount: "4", code: core.ErrInsufficientCollateral, debt: "500"},
		{name: "withdraw within threshold", typ: core.ActionTypeWithdraw, symbol: "BTC", amount: "2", debt: "500"},
		{name: "withdraw after price drop", price: "85", typ: core.ActionTypeWithdraw, symbol: "BTC", amount: "1", code: core.ErrInsufficientCollateral, debt: "500"},
		{name: "partial repay", typ: core.ActionTypeRepay, symbol: "USDT", amount: "200", debt: "300"},
		{name: "borrow again", typ: core.ActionTypeBorrow, symbol: "USDT", amount: "100", debt: "400"},
		{name: "withdraw freed collateral", typ: core.ActionTypeWithdraw, symbol: "BTC", amount: "2", debt: "400"},
		{name: "repay everything", typ: core.ActionTypeRepay, symbol: "USDT", amount: "1000", debt: "0"},
		{name: "withdraw the rest", typ: core.ActionTypeWithdraw, symbol: "BTC", amount: "6", debt: "0"},
	}

	for _, step := range steps {
		t.Run(step.name, func(t *testing.T) {
			if step.price != "" {
				f.setPrice("BTC", step.price)
			}

			_, err := f.do(step.typ, "alice", step.symbol, step.amount)
			if step.code != 0 {
				assertCode(t, step.code, err)
			} else {
				require.Nil(t, err)
			}

			account, err := f.market.Account(f.ctx, "alice")
			require.Nil(t, err)
			require.NotNil(t, account.Valuation)
			assert.True(t, account.Valuation.Solvent(), "collateral %s debt %s",
				account.Valuation.CollateralValue, account.Valuation.DebtValue)
			assertDecimal(t, step.debt, account.Valuation.DebtValue)
		})
	}

	assertDecimal(t, "0", f.position("alice", "BTC").SupplyShares)
}
