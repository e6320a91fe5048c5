package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"moneymarket/core"
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
	ethAsset  = "43d61dcd-e413-450d-80b8-101d5e903357"
)

var (
	btcParams = core.ReserveParams{
		MaxLTV:               7000,
		LiquidationThreshold: 8000,
		LiquidationBonus:     10500,
		ReserveFactor:        1000,
		OptimalUtilization:   8000,
		BaseRate:             200,
		OptimalRate:          1000,
		MaxRate:              10000,
	}

	// no interest keeps liquidation numbers exact
	usdtParams = core.ReserveParams{
		MaxLTV:               8000,
		LiquidationThreshold: 8500,
		LiquidationBonus:     10500,
		ReserveFactor:        1000,
		OptimalUtilization:   9000,
	}
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

func (c *clock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type fixture struct {
	t      *testing.T
	ctx    context.Context
	market *service
	store  *memory.Store
	clock  *clock
}

// newFixture market with BTC at 100 and USDT at 1
func newFixture(t *testing.T) *fixture {
	ctx := context.Background()
	f := &fixture{
		t:     t,
		ctx:   ctx,
		store: memory.New(),
		clock: &clock{now: time.Unix(1600000000, 0).UTC()},
	}

	f.market = New(f.store, f.clock).(*service)

	require.Nil(t, f.market.Init(ctx, admin))
	require.Nil(t, f.market.AddReserve(ctx, admin, &core.Reserve{Symbol: "BTC", AssetID: btcAsset, Precision: 8, ReserveParams: btcParams}))
	require.Nil(t, f.market.AddReserve(ctx, admin, &core.Reserve{Symbol: "USDT", AssetID: usdtAsset, Precision: 8, ReserveParams: usdtParams}))
	require.Nil(t, f.market.SetPrice(ctx, admin, "BTC", d("100"), nil))
	require.Nil(t, f.market.SetPrice(ctx, admin, "USDT", d("1"), nil))
	return f
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) do(typ core.ActionType, sender, symbol, amount string) (*core.Receipt, error) {
	return f.market.Handle(f.ctx, &core.Action{
		TraceID: uuid.New(),
		Type:    typ,
		Sender:  sender,
		Symbol:  symbol,
		Amount:  d(amount),
	})
}

func (f *fixture) mustDo(typ core.ActionType, sender, symbol, amount string) *core.Receipt {
	f.t.Helper()
	r, err := f.do(typ, sender, symbol, amount)
	require.Nil(f.t, err, "%s %s %s %s", typ, sender, symbol, amount)
	return r
}

// setPrice move the price in a later block
func (f *fixture) setPrice(symbol, price string) {
	f.t.Helper()
	f.clock.advance(5 * time.Second)
	require.Nil(f.t, f.market.SetPrice(f.ctx, admin, symbol, d(price), nil))
}

func (f *fixture) reserve(symbol string) *core.Reserve {
	var r *core.Reserve
	_ = f.store.View(f.ctx, func(ctx context.Context, l core.Ledger) error {
		r, _ = l.FindReserve(ctx, symbol)
		return nil
	})
	require.NotNil(f.t, r)
	return r
}

func (f *fixture) position(owner, symbol string) *core.Position {
	var p *core.Position
	_ = f.store.View(f.ctx, func(ctx context.Context, l core.Ledger) error {
		p, _ = l.FindPosition(ctx, owner, symbol)
		return nil
	})
	return p
}

func assertCode(t *testing.T, code core.ErrorCode, err error) {
	t.Helper()
	assert.True(t, errors.Is(err, code), "want %s, got %v", code, err)
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, d(expected).Equal(actual), "want %s, got %s", expected, actual)
}
