package payee

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/service/market"
	"moneymarket/store/memory"

	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	admin     = "admin"
	btcAsset  = "c6d0c728-2624-429b-8e0d-d9d19b6592fa"
	usdtAsset = "4d8c508b-91c5-375b-92b0-ee702ed2dac5"
)

type clock struct {
	now time.Time
}

func (c *clock) Now(ctx context.Context) time.Time {
	return c.now
}

func (c *clock) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return t.Unix() / 5, nil
}

func (c *clock) CurrentBlock(ctx context.Context) (int64, error) {
	return c.GetBlock(ctx, c.now)
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newPayee(t *testing.T) (*Payee, *memory.Store, core.IMarketService) {
	ctx := context.Background()
	store := memory.New()
	marketz := market.New(store, &clock{now: time.Unix(1600000000, 0).UTC()})

	params := core.ReserveParams{
		MaxLTV:               7000,
		LiquidationThreshold: 8000,
		LiquidationBonus:     10500,
		ReserveFactor:        1000,
		OptimalUtilization:   8000,
	}

	require.Nil(t, marketz.Init(ctx, admin))
	require.Nil(t, marketz.AddReserve(ctx, admin, &core.Reserve{Symbol: "BTC", AssetID: btcAsset, Precision: 8, ReserveParams: params}))
	require.Nil(t, marketz.AddReserve(ctx, admin, &core.Reserve{Symbol: "USDT", AssetID: usdtAsset, Precision: 8, ReserveParams: params}))
	require.Nil(t, marketz.SetPrice(ctx, admin, "BTC", d("100"), nil))
	require.Nil(t, marketz.SetPrice(ctx, admin, "USDT", d("1"), nil))

	return New(nil, store, marketz, nil), store, marketz
}

func notification(sender, asset, amount, memo string) *core.Notification {
	return &core.Notification{
		SnapshotID: uuid.New(),
		TraceID:    uuid.New(),
		Sender:     sender,
		AssetID:    asset,
		Amount:     d(amount),
		Memo:       memo,
	}
}

func position(store *memory.Store, owner, symbol string) *core.Position {
	var p *core.Position
	_ = store.View(context.Background(), func(ctx context.Context, l core.Ledger) error {
		p, _ = l.FindPosition(ctx, owner, symbol)
		return nil
	})
	return p
}

func lastTransfer(store *memory.Store) *core.Transfer {
	transfers := store.Transfers()
	return transfers[len(transfers)-1]
}

func TestHandleNotification(t *testing.T) {
	ctx := context.Background()

	t.Run("supply", func(t *testing.T) {
		w, store, _ := newPayee(t)

		require.NoError(t, w.handleNotification(ctx, notification("alice", btcAsset, "1", "supply")))
		assert.Equal(t, "1", position(store, "alice", "BTC").SupplyShares.String())

		in := lastTransfer(store)
		assert.Equal(t, core.TransferDirectionIn, in.Direction)
		assert.Equal(t, "1", in.Amount.String())
	})

	t.Run("redelivered notification applies once", func(t *testing.T) {
		w, store, _ := newPayee(t)

		n := notification("alice", btcAsset, "1", "supply")
		require.NoError(t, w.handleNotification(ctx, n))
		require.NoError(t, w.handleNotification(ctx, n))

		assert.Equal(t, "1", position(store, "alice", "BTC").SupplyShares.String())
		assert.Len(t, store.Transfers(), 1)
	})

	t.Run("unroutable memo refunds everything", func(t *testing.T) {
		w, store, _ := newPayee(t)

		n := notification("alice", btcAsset, "1.5", "hello")
		require.NoError(t, w.handleNotification(ctx, n))

		refund := lastTransfer(store)
		assert.Equal(t, core.TransferDirectionOut, refund.Direction)
		assert.Equal(t, "alice", refund.Opponent)
		assert.Equal(t, "BTC", refund.Symbol)
		assert.Equal(t, "1.5", refund.Amount.String())
		assert.Equal(t, "refund:100307", refund.Memo)
		assert.True(t, position(store, "alice", "BTC").SupplyShares.IsZero())
	})

	t.Run("unlisted asset refunds everything", func(t *testing.T) {
		w, store, _ := newPayee(t)

		require.NoError(t, w.handleNotification(ctx, notification("alice", "unknown-asset", "3", "supply")))

		refund := lastTransfer(store)
		assert.Equal(t, core.TransferDirectionOut, refund.Direction)
		assert.Equal(t, "unknown-asset", refund.AssetID)
		assert.Equal(t, "3", refund.Amount.String())
	})

	t.Run("repay on behalf refunds the excess", func(t *testing.T) {
		w, store, marketz := newPayee(t)

		require.NoError(t, w.handleNotification(ctx, notification("bob", usdtAsset, "1000", "supply")))
		require.NoError(t, w.handleNotification(ctx, notification("alice", btcAsset, "1", "supply")))

		_, err := marketz.Handle(ctx, &core.Action{
			TraceID: uuid.New(),
			Type:    core.ActionTypeBorrow,
			Sender:  "alice",
			Symbol:  "USDT",
			Amount:  d("50"),
		})
		require.NoError(t, err)

		require.NoError(t, w.handleNotification(ctx, notification("bob", usdtAsset, "60", "repay:alice")))
		assert.True(t, position(store, "alice", "USDT").BorrowShares.IsZero())

		refund := lastTransfer(store)
		assert.Equal(t, core.TransferDirectionOut, refund.Direction)
		assert.Equal(t, "bob", refund.Opponent)
		assert.Equal(t, "10", refund.Amount.String())
		assert.Equal(t, "refund", refund.Memo)
	})

	t.Run("rejected action refunds everything", func(t *testing.T) {
		w, store, _ := newPayee(t)

		require.NoError(t, w.handleNotification(ctx, notification("bob", usdtAsset, "10", "repay:alice")))

		refund := lastTransfer(store)
		assert.Equal(t, core.TransferDirectionOut, refund.Direction)
		assert.Equal(t, "10", refund.Amount.String())
		assert.Equal(t, "refund:100407", refund.Memo)
	})
}
