package market

import (
	"testing"

	"moneymarket/core"

	"github.com/fox-one/pkg/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAppliedOnce(t *testing.T) {
	borrow := func(trace, sender, amount string) *core.Action {
		return &core.Action{
			TraceID: trace,
			Type:    core.ActionTypeBorrow,
			Sender:  sender,
			Symbol:  "USDT",
			Amount:  d(amount),
		}
	}

	t.Run("replay returns the stored receipt", func(t *testing.T) {
		f := newBorrowFixture(t)
		before := len(f.store.Transfers())
		trace := uuid.New()

		first, err := f.market.Handle(f.ctx, borrow(trace, "alice", "100"))
		require.Nil(t, err)

		again, err := f.market.Handle(f.ctx, borrow(trace, "alice", "100"))
		require.Nil(t, err)
		assert.Equal(t, first.TraceID, again.TraceID)
		assertDecimal(t, first.Amount.String(), again.Amount)
		assertDecimal(t, first.Shares.String(), again.Shares)

		assertDecimal(t, "100", f.position("alice", "USDT").BorrowShares)
		assertDecimal(t, "100", f.reserve("USDT").TotalDebt)
		assert.Len(t, f.store.Transfers()[before:], 1)
	})

	t.Run("trace reused by another action", func(t *testing.T) {
		f := newBorrowFixture(t)
		trace := uuid.New()
		f.mustDo(core.ActionTypeSupply, "bob", "BTC", "1")
		_, err := f.market.Handle(f.ctx, borrow(trace, "alice", "100"))
		require.Nil(t, err)

		for _, action := range []*core.Action{
			borrow(trace, "bob", "100"),
			{TraceID: trace, Type: core.ActionTypeRepay, Sender: "alice", Symbol: "USDT", Amount: d("100")},
		} {
			_, err := f.market.Handle(f.ctx, action)
			assertCode(t, core.ErrTraceConflict, err)
		}

		assertDecimal(t, "100", f.position("alice", "USDT").BorrowShares)
		assertDecimal(t, "0", f.position("bob", "USDT").BorrowShares)
	})

	t.Run("rejected action does not burn the trace", func(t *testing.T) {
		f := newBorrowFixture(t)
		trace := uuid.New()

		_, err := f.market.Handle(f.ctx, borrow(trace, "alice", "5000"))
		assertCode(t, core.ErrLTVExceeded, err)

		_, err = f.market.Handle(f.ctx, borrow(trace, "alice", "100"))
		require.Nil(t, err)
		assertDecimal(t, "100", f.position("alice", "USDT").BorrowShares)
	})

	t.Run("funded replay is not charged twice", func(t *testing.T) {
		f := newBorrowFixture(t)
		f.mustDo(core.ActionTypeBorrow, "alice", "USDT", "700")
		before := len(f.store.Transfers())

		repay := &core.Action{
			TraceID: uuid.New(),
			Type:    core.ActionTypeRepay,
			Sender:  "alice",
			Symbol:  "USDT",
			Amount:  d("200"),
			Funds:   &core.Notification{TraceID: uuid.New(), Sender: "alice", AssetID: usdtAsset, Amount: d("300")},
		}

		for i := 0; i < 2; i++ {
			r, err := f.market.Repay(f.ctx, repay)
			require.Nil(t, err)
			assertDecimal(t, "200", r.Amount)
			assertDecimal(t, "100", r.Refund)
		}

		assertDecimal(t, "500", f.position("alice", "USDT").BorrowShares)
		assert.Len(t, f.store.Transfers()[before:], 2)
	})
}
