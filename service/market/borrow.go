package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"
)

// Borrow lend action.Amount to the sender against its collateral
func (s *service) Borrow(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	return s.run(ctx, action, func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error) {
		if err := requirePositive(action.Amount, "borrow"); err != nil {
			return nil, err
		}

		global, err := ledger.Global(ctx)
		if err != nil {
			return nil, err
		}

		if err := requireActive(global); err != nil {
			return nil, err
		}

		reserve, err := loadReserve(ctx, ledger, action.Symbol, now)
		if err != nil {
			return nil, err
		}

		if err := requireReserveActive(reserve); err != nil {
			return nil, err
		}

		if err := compound.Require(reserve.MaxLTV > 0, core.ErrBorrowNotAllowed, "%s is not borrowable", reserve.Symbol); err != nil {
			return nil, err
		}

		amount, err := reserveAmount(reserve, action.Amount, "borrow")
		if err != nil {
			return nil, err
		}

		if err := compound.Require(
			amount.Amount.LessThanOrEqual(reserve.Available()),
			core.ErrInsufficientLiquidity,
			"borrow %s exceeds available liquidity", amount,
		); err != nil {
			return nil, err
		}

		ts, ta := compound.BorrowShares(reserve)
		shares, err := compound.SharesFromAmountCeil(amount, ts, ta)
		if err != nil {
			return nil, err
		}

		if ts, err = ts.Add(shares); err != nil {
			return nil, err
		}

		if ta, err = ta.Add(amount); err != nil {
			return nil, err
		}

		position, err := loadPosition(ctx, ledger, action.Sender, reserve.Symbol)
		if err != nil {
			return nil, err
		}

		reserve.TotalBorrowShares = ts.Amount
		reserve.TotalDebt = ta.Amount
		position.BorrowShares = position.BorrowShares.Add(shares.Amount)

		v, err := valuate(ctx, ledger, global, action.Sender, now, overrides{
			reserves:  []*core.Reserve{reserve},
			positions: []*core.Position{position},
		})
		if err != nil {
			return nil, err
		}

		if err := compound.Require(
			v.DebtValue.LessThanOrEqual(v.MaxBorrowableValue),
			core.ErrLTVExceeded,
			"debt %s would exceed the borrow limit %s", v.DebtValue, v.MaxBorrowableValue,
		); err != nil {
			return nil, err
		}

		if err := compound.Require(v.Solvent(), core.ErrInsufficientCollateral, "borrow would leave the account undercollateralized"); err != nil {
			return nil, err
		}

		if err := ledger.TransferOut(ctx, newTransfer(action.TraceID, reserve, action.Sender, amount, "borrow")); err != nil {
			return nil, err
		}

		if err := ledger.SaveReserve(ctx, reserve); err != nil {
			return nil, err
		}

		if err := ledger.SavePosition(ctx, position); err != nil {
			return nil, err
		}

		return &core.Receipt{
			TraceID: action.TraceID,
			Type:    core.ActionTypeBorrow,
			Symbol:  reserve.Symbol,
			Amount:  amount.Amount,
			Shares:  shares.Amount,
		}, nil
	})
}
