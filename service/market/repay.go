package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"
)

// Repay pay back debt of action.Borrower, the sender's own debt if empty
//
// The amount is clamped to what is owed.
func (s *service) Repay(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	return s.run(ctx, action, func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error) {
		if err := requirePositive(action.Amount, "repay"); err != nil {
			return nil, err
		}

		global, err := ledger.Global(ctx)
		if err != nil {
			return nil, err
		}

		if err := requireActive(global); err != nil {
			return nil, err
		}

		// repaying a paused reserve is allowed
		reserve, err := loadReserve(ctx, ledger, action.Symbol, now)
		if err != nil {
			return nil, err
		}

		borrower := action.Borrower
		if borrower == "" {
			borrower = action.Sender
		}

		position, err := loadPosition(ctx, ledger, borrower, reserve.Symbol)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(position.BorrowShares.IsPositive(), core.ErrNoDebt, "%s has no %s debt", borrower, reserve.Symbol); err != nil {
			return nil, err
		}

		owed, err := compound.BorrowedAmount(reserve, position)
		if err != nil {
			return nil, err
		}

		amount, err := reserveAmount(reserve, action.Amount, "repay")
		if err != nil {
			return nil, err
		}

		if amount.Amount.GreaterThan(owed.Amount) {
			amount = owed
		}

		ts, ta := compound.BorrowShares(reserve)
		shares, err := compound.SharesFromAmountFloor(amount, ts, ta)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(shares.Amount.IsPositive(), core.ErrInvalidAmount, "repay %s is too small", amount); err != nil {
			return nil, err
		}

		if shares.Amount.GreaterThan(position.BorrowShares) {
			shares = compound.ReserveAsset(reserve, position.BorrowShares)
		}

		if ts, err = ts.Sub(shares); err != nil {
			return nil, err
		}

		if ta, err = ta.Sub(amount); err != nil {
			return nil, err
		}

		reserve.TotalBorrowShares = ts.Amount
		reserve.TotalDebt = ta.Amount
		position.BorrowShares = position.BorrowShares.Sub(shares.Amount)

		if err := ledger.TransferIn(ctx, newTransfer(action.TraceID, reserve, action.Sender, amount, "repay")); err != nil {
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
			Type:    core.ActionTypeRepay,
			Symbol:  reserve.Symbol,
			Amount:  amount.Amount,
			Shares:  shares.Amount,
		}, nil
	})
}
