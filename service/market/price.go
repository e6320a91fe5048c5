package market

import (
	"context"
	"errors"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/logger"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// SetPrice record the symbol's price, at most once per block
func (s *service) SetPrice(ctx context.Context, caller, symbol string, price decimal.Decimal, source []byte) error {
	log := logger.FromContext(ctx).WithField("symbol", symbol).WithField("price", price)

	now := s.blocks.Now(ctx)
	block, err := s.blocks.GetBlock(ctx, now)
	if err != nil {
		log.WithError(err).Errorln("blocks.GetBlock")
		return err
	}

	err = s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		global, err := ledger.Global(ctx)
		if err != nil {
			return err
		}

		if err := compound.Require(global.IsUpdater(caller), core.ErrUnauthorized, "%s cannot set prices", caller); err != nil {
			return err
		}

		if _, err := ledger.FindReserve(ctx, symbol); err != nil {
			return err
		}

		var prev *core.Price
		if stored, err := ledger.FindPrice(ctx, symbol); err == nil {
			prev = stored
		} else if !errors.Is(err, core.ErrPriceNotFound) {
			return err
		}

		if err := compound.CheckPriceUpdate(prev, price, block, global.MaxPriceDelta); err != nil {
			return err
		}

		next := &core.Price{Symbol: symbol}
		if prev != nil {
			p := *prev
			next = &p
		}

		next.Price = price
		next.Block = block
		next.PricedAt = now
		next.Source = types.JSONText(source)
		if len(source) == 0 {
			next.Source = types.JSONText("{}")
		}

		return ledger.SavePrice(ctx, next)
	})

	if err != nil {
		log.WithError(err).Errorln("market.SetPrice")
		return err
	}

	return nil
}
