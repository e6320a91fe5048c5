package market

import (
	"context"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/logger"
)

// Accrue accrue and store the reserve
func (s *service) Accrue(ctx context.Context, symbol string) (*core.Reserve, error) {
	now := s.blocks.Now(ctx)

	var reserve *core.Reserve
	err := s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		r, err := loadReserve(ctx, ledger, symbol, now)
		if err != nil {
			return err
		}

		reserve = r
		return ledger.SaveReserve(ctx, r)
	})

	return reserve, err
}

// AccrueAll accrue every reserve
func (s *service) AccrueAll(ctx context.Context) error {
	log := logger.FromContext(ctx)
	now := s.blocks.Now(ctx)

	return s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		reserves, err := ledger.ListReserves(ctx)
		if err != nil {
			return err
		}

		for _, r := range reserves {
			next := compound.Accrue(r, now)
			if err := ledger.SaveReserve(ctx, next); err != nil {
				log.WithError(err).WithField("symbol", r.Symbol).Errorln("ledger.SaveReserve")
				return err
			}
		}

		return nil
	})
}

// Reserves all reserves accrued to now with their rates
func (s *service) Reserves(ctx context.Context) ([]*core.ReserveView, error) {
	now := s.blocks.Now(ctx)

	var views []*core.ReserveView
	err := s.ledgers.View(ctx, func(ctx context.Context, ledger core.Ledger) error {
		reserves, err := ledger.ListReserves(ctx)
		if err != nil {
			return err
		}

		for _, r := range reserves {
			views = append(views, reserveView(compound.Accrue(r, now)))
		}

		return nil
	})

	return views, err
}

func reserveView(r *core.Reserve) *core.ReserveView {
	return &core.ReserveView{
		Reserve:     r,
		Utilization: compound.Utilization(r),
		BorrowRate:  compound.CurBorrowRate(r),
		SupplyRate:  compound.SupplyRate(r),
	}
}

// Account positions of owner and their valuation, the valuation is left
// empty while a price is unavailable
func (s *service) Account(ctx context.Context, owner string) (*core.Account, error) {
	now := s.blocks.Now(ctx)
	account := &core.Account{Owner: owner}

	err := s.ledgers.View(ctx, func(ctx context.Context, ledger core.Ledger) error {
		global, err := ledger.Global(ctx)
		if err != nil {
			return err
		}

		positions, err := ledger.ListPositions(ctx, owner)
		if err != nil {
			return err
		}

		for _, p := range positions {
			r, err := loadReserve(ctx, ledger, p.Symbol, now)
			if err != nil {
				return err
			}

			supplied, err := compound.SuppliedAmount(r, p)
			if err != nil {
				return err
			}

			borrowed, err := compound.BorrowedAmount(r, p)
			if err != nil {
				return err
			}

			account.Positions = append(account.Positions, &core.PositionView{
				Position: p,
				Supplied: supplied.Amount,
				Borrowed: borrowed.Amount,
			})
		}

		v, err := valuate(ctx, ledger, global, owner, now, overrides{})
		if err != nil && !isPriceUnavailable(err) {
			return err
		}

		account.Valuation = v
		return nil
	})

	if err != nil {
		return nil, err
	}

	return account, nil
}

func (s *service) Global(ctx context.Context) (*core.Global, error) {
	var global *core.Global
	err := s.ledgers.View(ctx, func(ctx context.Context, ledger core.Ledger) error {
		g, err := ledger.Global(ctx)
		global = g
		return err
	})

	return global, err
}
