package market

import (
	"context"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlobalAdmin(t *testing.T) {
	f := newFixture(t)

	assertCode(t, core.ErrAlreadyInitialized, f.market.Init(f.ctx, "someone"))
	assertCode(t, core.ErrUnauthorized, f.market.SetPaused(f.ctx, "alice", true))
	assertCode(t, core.ErrInvalidGlobalParams, f.market.SetCloseFactor(f.ctx, admin, 0))
	assertCode(t, core.ErrInvalidGlobalParams, f.market.SetPriceTTL(f.ctx, admin, 0))
	assertCode(t, core.ErrInvalidGlobalParams, f.market.SetMaxPriceDelta(f.ctx, admin, 10001))

	require.Nil(t, f.market.SetCloseFactor(f.ctx, admin, 10000))
	require.Nil(t, f.market.SetPriceTTL(f.ctx, admin, 60))
	require.Nil(t, f.market.SetEmergency(f.ctx, admin, true, 800))

	g, err := f.market.Global(f.ctx)
	require.Nil(t, err)
	assert.Equal(t, admin, g.Admin)
	assert.Equal(t, int64(10000), g.CloseFactor)
	assert.Equal(t, int64(60), g.PriceTTL)
	assert.True(t, g.EmergencyMode)
	assert.Equal(t, int64(800), g.EmergencyBonus)

	t.Run("max emergency bonus", func(t *testing.T) {
		cases := []struct {
			name   string
			caller string
			bonus  int64
			code   core.ErrorCode
		}{
			{"not admin", "alice", 500, core.ErrUnauthorized},
			{"negative", admin, -1, core.ErrInvalidGlobalParams},
			{"above scale", admin, 10001, core.ErrInvalidGlobalParams},
			{"lowered", admin, 300, 0},
		}

		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				err := f.market.SetMaxEmergencyBonus(f.ctx, c.caller, c.bonus)
				if c.code != 0 {
					assertCode(t, c.code, err)
					return
				}

				require.Nil(t, err)
			})
		}

		g, err := f.market.Global(f.ctx)
		require.Nil(t, err)
		assert.Equal(t, int64(300), g.MaxEmergencyBonus)
		assert.Equal(t, int64(800), g.EmergencyBonus)
		assert.Equal(t, int64(10800), compound.EffectiveBonus(f.reserve("BTC"), g))
	})
}

func TestAddReserve(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name    string
		reserve *core.Reserve
		caller  string
		code    core.ErrorCode
	}{
		{"not admin", &core.Reserve{Symbol: "ETH", AssetID: ethAsset, Precision: 8, ReserveParams: btcParams}, "alice", core.ErrUnauthorized},
		{"symbol exists", &core.Reserve{Symbol: "BTC", AssetID: ethAsset, Precision: 8, ReserveParams: btcParams}, admin, core.ErrReserveExists},
		{"asset exists", &core.Reserve{Symbol: "XBT", AssetID: btcAsset, Precision: 8, ReserveParams: btcParams}, admin, core.ErrReserveExists},
		{"no symbol", &core.Reserve{AssetID: ethAsset, Precision: 8, ReserveParams: btcParams}, admin, core.ErrInvalidRiskParams},
		{"bad params", &core.Reserve{Symbol: "ETH", AssetID: ethAsset, Precision: 8, ReserveParams: core.ReserveParams{MaxLTV: 9000, LiquidationThreshold: 8000}}, admin, core.ErrInvalidRiskParams},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertCode(t, c.code, f.market.AddReserve(f.ctx, c.caller, c.reserve))
		})
	}

	reserves, err := f.market.Reserves(f.ctx)
	require.Nil(t, err)
	require.Len(t, reserves, 2)
	assert.Equal(t, "BTC", reserves[0].Symbol)
	assert.Equal(t, "USDT", reserves[1].Symbol)
}

func TestSetPrice(t *testing.T) {
	f := newFixture(t)

	assertCode(t, core.ErrUnauthorized, f.market.SetPrice(f.ctx, "bob", "BTC", d("101"), nil))
	assertCode(t, core.ErrPriceThrottled, f.market.SetPrice(f.ctx, admin, "BTC", d("101"), nil))
	assertCode(t, core.ErrReserveNotFound, f.market.SetPrice(f.ctx, admin, "DOGE", d("1"), nil))

	require.Nil(t, f.market.SetUpdaters(f.ctx, admin, []string{"bob"}))
	f.clock.advance(5 * time.Second)

	assertCode(t, core.ErrPriceDeltaExceeded, f.market.SetPrice(f.ctx, "bob", "BTC", d("121"), nil))
	assertCode(t, core.ErrInvalidPrice, f.market.SetPrice(f.ctx, "bob", "BTC", d("0"), nil))
	require.Nil(t, f.market.SetPrice(f.ctx, "bob", "BTC", d("120"), []byte(`{"provider":"test"}`)))

	_ = f.store.View(f.ctx, func(ctx context.Context, l core.Ledger) error {
		p, err := l.FindPrice(ctx, "BTC")
		require.Nil(t, err)
		assertDecimal(t, "120", p.Price)
		assert.Equal(t, f.clock.now, p.PricedAt)
		return nil
	})
}

func TestAccrual(t *testing.T) {
	f := newFixture(t)
	f.mustDo(core.ActionTypeSupply, "alice", "BTC", "10")
	f.mustDo(core.ActionTypeSupply, "bob", "USDT", "1000")
	f.mustDo(core.ActionTypeBorrow, "bob", "BTC", "1")

	// 10% utilization, 3% a year
	f.clock.advance(time.Duration(compound.SecondsPerYear) * time.Second)

	r, err := f.market.Accrue(f.ctx, "BTC")
	require.Nil(t, err)
	assertDecimal(t, "1.03", r.TotalDebt)
	assertDecimal(t, "10.027", r.TotalLiquidity)
	assertDecimal(t, "0.003", r.ProtocolReserve)
	assert.Equal(t, f.clock.now, f.reserve("BTC").AccruedAt)

	t.Run("account", func(t *testing.T) {
		account, err := f.market.Account(f.ctx, "bob")
		require.Nil(t, err)
		require.Len(t, account.Positions, 2)
		// prices are a year old
		assert.Nil(t, account.Valuation)

		for _, p := range account.Positions {
			switch p.Symbol {
			case "BTC":
				assertDecimal(t, "1.03", p.Borrowed)
			case "USDT":
				assertDecimal(t, "1000", p.Supplied)
			}
		}
	})

	t.Run("collect reserve", func(t *testing.T) {
		assertCode(t, core.ErrUnauthorized, f.market.CollectReserve(f.ctx, "alice", "BTC", d("0.001"), "alice", uuid.New()))
		assertCode(t, core.ErrInsufficientReserve, f.market.CollectReserve(f.ctx, admin, "BTC", d("0.004"), "treasury", uuid.New()))
		require.Nil(t, f.market.CollectReserve(f.ctx, admin, "BTC", d("0.003"), "treasury", uuid.New()))

		assertDecimal(t, "0", f.reserve("BTC").ProtocolReserve)
		transfers := f.store.Transfers()
		last := transfers[len(transfers)-1]
		assert.Equal(t, "treasury", last.Opponent)
		assertDecimal(t, "0.003", last.Amount)
	})

	t.Run("update reserve accrues first", func(t *testing.T) {
		f.clock.advance(time.Hour)
		params := btcParams
		params.BaseRate = 0
		require.Nil(t, f.market.UpdateReserve(f.ctx, admin, "BTC", params))

		r := f.reserve("BTC")
		assert.Equal(t, f.clock.now, r.AccruedAt)
		assert.Equal(t, int64(0), r.BaseRate)
		assert.True(t, r.TotalDebt.GreaterThan(d("1.03")))
	})

	t.Run("accrue all", func(t *testing.T) {
		f.clock.advance(time.Hour)
		require.Nil(t, f.market.AccrueAll(f.ctx))
		assert.Equal(t, f.clock.now, f.reserve("BTC").AccruedAt)
		assert.Equal(t, f.clock.now, f.reserve("USDT").AccruedAt)
	})
}
