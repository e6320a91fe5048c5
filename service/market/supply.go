package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"
)

// Supply deposit action.Amount into the reserve for supply shares
func (s *service) Supply(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	return s.run(ctx, action, func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error) {
		if err := requirePositive(action.Amount, "supply"); err != nil {
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

		if _, err := ledger.FindPrice(ctx, reserve.Symbol); err != nil {
			return nil, err
		}

		amount, err := reserveAmount(reserve, action.Amount, "supply")
		if err != nil {
			return nil, err
		}

		ts, ta := compound.SupplyShares(reserve)
		shares, err := compound.SharesFromAmountFloor(amount, ts, ta)
		if err != nil {
			return nil, err
		}

		if err := compound.Require(shares.Amount.IsPositive(), core.ErrInvalidAmount, "supply %s is too small", amount); err != nil {
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

		// 首次存款默认作为抵押
		if !position.SupplyShares.IsPositive() {
			position.Collateral = true
		}

		position.SupplyShares = position.SupplyShares.Add(shares.Amount)
		reserve.TotalSupplyShares = ts.Amount
		reserve.TotalLiquidity = ta.Amount

		if err := ledger.TransferIn(ctx, newTransfer(action.TraceID, reserve, action.Sender, amount, "supply")); err != nil {
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
			Type:    core.ActionTypeSupply,
			Symbol:  reserve.Symbol,
			Amount:  amount.Amount,
			Shares:  shares.Amount,
		}, nil
	})
}
