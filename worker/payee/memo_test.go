package payee

import (
	"errors"
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMemo(t *testing.T) {
	cases := []struct {
		memo       string
		typ        core.ActionType
		borrower   string
		collateral string
	}{
		{memo: "supply", typ: core.ActionTypeSupply},
		{memo: " supply ", typ: core.ActionTypeSupply},
		{memo: "repay:alice", typ: core.ActionTypeRepay, borrower: "alice"},
		{memo: "cmVwYXk6YWxpY2U=", typ: core.ActionTypeRepay, borrower: "alice"},
		{memo: "liquidate:bob:btc", typ: core.ActionTypeLiquidate, borrower: "bob", collateral: "BTC"},
		{memo: "bGlxdWlkYXRlOmJvYjpidGM=", typ: core.ActionTypeLiquidate, borrower: "bob", collateral: "BTC"},
	}

	for _, c := range cases {
		t.Run(c.memo, func(t *testing.T) {
			action, err := parseMemo(c.memo)
			require.NoError(t, err)
			assert.Equal(t, c.typ, action.Type)
			assert.Equal(t, c.borrower, action.Borrower)
			assert.Equal(t, c.collateral, action.Collateral)
		})
	}

	for _, memo := range []string{"", "hello", "repay", "repay:", "supply:alice", "liquidate:bob", "liquidate::BTC", "withdraw"} {
		t.Run("invalid "+memo, func(t *testing.T) {
			_, err := parseMemo(memo)
			assert.True(t, errors.Is(err, core.ErrInvalidMemo))
		})
	}
}
