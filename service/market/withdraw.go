package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"
)

// Withdraw redeem action.Amount of the sender's supply
func (s *service) Withdraw(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	return s.run(ctx, action, func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error) {
		if err := requirePositive(action.Amount, "withdraw"); err != nil {
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

		position, err := loadPosition(ctx, ledger, action.Sender, reserve.Symbol)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(position.SupplyShares.IsPositive(), core.ErrNoSupply, "no %s supplied", reserve.Symbol); err != nil {
			return nil, err
		}

		balance, err := compound.SuppliedAmount(reserve, position)
		if err != nil {
			return nil, err
		}

		amount, err := reserveAmount(reserve, action.Amount, "withdraw")
		if err != nil {
			return nil, err
		}

		if err := compound.Require(
			amount.Amount.LessThanOrEqual(balance.Amount),
			core.ErrWithdrawExceedsBalance,
			"withdraw %s exceeds balance %s", amount, balance,
		); err != nil {
			return nil, err
		}

		if err := compound.Require(
			amount.Amount.LessThanOrEqual(reserve.Available()),
			core.ErrInsufficientLiquidity,
			"withdraw %s exceeds available liquidity", amount,
		); err != nil {
			return nil, err
		}

		ts, ta := compound.SupplyShares(reserve)
		shares, err := compound.SharesFromAmountCeil(amount, ts, ta)
		if err != nil {
			return nil, err
		}

		if shares.Amount.GreaterThan(position.SupplyShares) {
			shares = compound.ReserveAsset(reserve, position.SupplyShares)
		}

		if ts, err = ts.Sub(shares); err != nil {
			return nil, err
		}

		if ta, err = ta.Sub(amount); err != nil {
			return nil, err
		}

		reserve.TotalSupplyShares = ts.Amount
		reserve.TotalLiquidity = ta.Amount
		position.SupplyShares = position.SupplyShares.Sub(shares.Amount)
		if position.SupplyShares.IsZero() {
			position.Collateral = false
		}

		v, err := valuate(ctx, ledger, global, action.Sender, now, overrides{
			reserves:  []*core.Reserve{reserve},
			positions: []*core.Position{position},
		})
		if err != nil {
			return nil, err
		}

		if err := compound.Require(v.Solvent(), core.ErrInsufficientCollateral, "withdraw would leave the account undercollateralized"); err != nil {
			return nil, err
		}

		if err := ledger.TransferOut(ctx, newTransfer(action.TraceID, reserve, action.Sender, amount, "withdraw")); err != nil {
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
			Type:    core.ActionTypeWithdraw,
			Symbol:  reserve.Symbol,
			Amount:  amount.Amount,
			Shares:  shares.Amount,
		}, nil
	})
}
