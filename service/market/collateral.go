package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/shopspring/decimal"
)

// SetCollateral enable or disable the sender's supply in action.Symbol as collateral
func (s *service) SetCollateral(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	return s.run(ctx, action, func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error) {
		global, err := ledger.Global(ctx)
		if err != nil {
			return nil, err
		}

		position, err := loadPosition(ctx, ledger, action.Sender, action.Symbol)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(position.ID > 0, core.ErrPositionNotFound, "no %s position", action.Symbol); err != nil {
			return nil, err
		}

		if _, err := ledger.FindPrice(ctx, action.Symbol); err != nil {
			return nil, err
		}

		receipt := &core.Receipt{
			TraceID: action.TraceID,
			Type:    core.ActionTypeSetCollateral,
			Symbol:  action.Symbol,
			Amount:  decimal.Zero,
			Shares:  position.SupplyShares,
		}

		if position.Collateral == action.Enabled {
			return receipt, nil
		}

		if action.Enabled {
			if err := compound.Require(
				position.SupplyShares.IsPositive(),
				core.ErrCollateralWithoutSupply,
				"no %s supplied to use as collateral", action.Symbol,
			); err != nil {
				return nil, err
			}
		}

		position.Collateral = action.Enabled

		if !action.Enabled {
			v, err := valuate(ctx, ledger, global, action.Sender, now, overrides{
				positions: []*core.Position{position},
			})
			if err != nil {
				return nil, err
			}

			if err := compound.Require(v.Solvent(), core.ErrInsufficientCollateral, "disabling %s would leave the account undercollateralized", action.Symbol); err != nil {
				return nil, err
			}
		}

		if err := ledger.SavePosition(ctx, position); err != nil {
			return nil, err
		}

		return receipt, nil
	})
}
