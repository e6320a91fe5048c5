package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/logger"
)

// Liquidate repay up to action.Amount of the borrower's action.Symbol debt and
// seize action.Collateral with the liquidation bonus
func (s *service) Liquidate(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	return s.run(ctx, action, func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error) {
		if err := requirePositive(action.Amount, "liquidate"); err != nil {
			return nil, err
		}

		if err := compound.Require(action.Symbol != action.Collateral, core.ErrSameSymbol, "debt and collateral must differ"); err != nil {
			return nil, err
		}

		if err := compound.Require(action.Borrower != "", core.ErrInvalidAction, "borrower is required"); err != nil {
			return nil, err
		}

		global, err := ledger.Global(ctx)
		if err != nil {
			return nil, err
		}

		if err := requireActive(global); err != nil {
			return nil, err
		}

		debtReserve, err := loadReserve(ctx, ledger, action.Symbol, now)
		if err != nil {
			return nil, err
		}

		collateralReserve, err := loadReserve(ctx, ledger, action.Collateral, now)
		if err != nil {
			return nil, err
		}

		for _, r := range []*core.Reserve{debtReserve, collateralReserve} {
			if err := requireReserveActive(r); err != nil {
				return nil, err
			}
		}

		v, err := valuate(ctx, ledger, global, action.Borrower, now, overrides{
			reserves: []*core.Reserve{debtReserve, collateralReserve},
		})
		if err != nil {
			return nil, err
		}

		if err := compound.Require(!v.Solvent(), core.ErrNotLiquidatable, "%s is not liquidatable", action.Borrower); err != nil {
			return nil, err
		}

		debtPrice, err := freshPrice(ctx, ledger, global, debtReserve.Symbol, now)
		if err != nil {
			return nil, err
		}

		collateralPrice, err := freshPrice(ctx, ledger, global, collateralReserve.Symbol, now)
		if err != nil {
			return nil, err
		}

		debtPosition, err := loadPosition(ctx, ledger, action.Borrower, debtReserve.Symbol)
		if err != nil {
			return nil, err
		}

		collateralPosition, err := loadPosition(ctx, ledger, action.Borrower, collateralReserve.Symbol)
		if err != nil {
			return nil, err
		}

		result, err := compound.SizeLiquidation(&compound.Seizure{
			Valuation:          v,
			DebtReserve:        debtReserve,
			DebtPosition:       debtPosition,
			DebtPrice:          debtPrice,
			CollateralReserve:  collateralReserve,
			CollateralPosition: collateralPosition,
			CollateralPrice:    collateralPrice,
			CloseFactor:        global.CloseFactor,
			Bonus:              compound.EffectiveBonus(collateralReserve, global),
		}, action.Amount)
		if err != nil {
			return nil, err
		}

		// debt side
		ts, ta := compound.BorrowShares(debtReserve)
		if ts, err = ts.Sub(result.RepayShares); err != nil {
			return nil, err
		}

		if ta, err = ta.Sub(result.Repay); err != nil {
			return nil, err
		}

		debtReserve.TotalBorrowShares = ts.Amount
		debtReserve.TotalDebt = ta.Amount
		debtPosition.BorrowShares = debtPosition.BorrowShares.Sub(result.RepayShares.Amount)

		// collateral side
		cs, ca := compound.SupplyShares(collateralReserve)
		if cs, err = cs.Sub(result.SeizeShares); err != nil {
			return nil, err
		}

		if ca, err = ca.Sub(result.Seize); err != nil {
			return nil, err
		}

		collateralReserve.TotalSupplyShares = cs.Amount
		collateralReserve.TotalLiquidity = ca.Amount
		collateralPosition.SupplyShares = collateralPosition.SupplyShares.Sub(result.SeizeShares.Amount)
		if collateralPosition.SupplyShares.IsZero() {
			collateralPosition.Collateral = false
		}

		if err := ledger.TransferIn(ctx, newTransfer(action.TraceID, debtReserve, action.Sender, result.Repay, "liquidate repay")); err != nil {
			return nil, err
		}

		if err := ledger.TransferOut(ctx, newTransfer(action.TraceID, collateralReserve, action.Sender, result.Seize, "liquidate seize")); err != nil {
			return nil, err
		}

		for _, r := range []*core.Reserve{debtReserve, collateralReserve} {
			if err := ledger.SaveReserve(ctx, r); err != nil {
				return nil, err
			}
		}

		for _, p := range []*core.Position{debtPosition, collateralPosition} {
			if err := ledger.SavePosition(ctx, p); err != nil {
				return nil, err
			}
		}

		logger.FromContext(ctx).WithField("borrower", action.Borrower).
			WithField("seized", result.Seize.String()).
			Infoln("market: liquidated")

		return &core.Receipt{
			TraceID:      action.TraceID,
			Type:         core.ActionTypeLiquidate,
			Symbol:       debtReserve.Symbol,
			Amount:       result.Repay.Amount,
			Shares:       result.RepayShares.Amount,
			Collateral:   collateralReserve.Symbol,
			Seized:       result.Seize.Amount,
			SeizedShares: result.SeizeShares.Amount,
		}, nil
	})
}
