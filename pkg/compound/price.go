package compound

import (
	"time"

	"moneymarket/core"

	"github.com/shopspring/decimal"
)

// CheckFresh reject a missing price or one older than ttl seconds
func CheckFresh(price *core.Price, now time.Time, ttl int64) error {
	if price == nil || !price.Price.IsPositive() {
		return core.Errorf(core.ErrPriceNotFound, "price not available")
	}

	return Require(
		now.Unix()-price.PricedAt.Unix() <= ttl,
		core.ErrPriceStale,
		"price of %s is stale, updated at %s", price.Symbol, price.PricedAt.Format(time.RFC3339),
	)
}

// CheckPriceUpdate at most one update per block, bounded relative change per update
func CheckPriceUpdate(prev *core.Price, price decimal.Decimal, block int64, maxDelta int64) error {
	if err := Require(price.IsPositive(), core.ErrInvalidPrice, "price must be positive"); err != nil {
		return err
	}

	if prev == nil || !prev.Price.IsPositive() {
		return nil
	}

	if err := Require(
		block > prev.Block,
		core.ErrPriceThrottled,
		"price of %s already updated in block %d", prev.Symbol, prev.Block,
	); err != nil {
		return err
	}

	// |new - old| / old <= max delta
	delta := price.Sub(prev.Price).Abs().Mul(rateScale)
	return Require(
		delta.LessThanOrEqual(prev.Price.Mul(decimal.NewFromInt(maxDelta))),
		core.ErrPriceDeltaExceeded,
		"price of %s moves from %s to %s, beyond %d bps", prev.Symbol, prev.Price, price, maxDelta,
	)
}
