package market

import (
	"context"

	"moneymarket/core"
)

// Handle dispatch the action by type
func (s *service) Handle(ctx context.Context, action *core.Action) (*core.Receipt, error) {
	switch action.Type {
	case core.ActionTypeSupply:
		return s.Supply(ctx, action)
	case core.ActionTypeWithdraw:
		return s.Withdraw(ctx, action)
	case core.ActionTypeBorrow:
		return s.Borrow(ctx, action)
	case core.ActionTypeRepay:
		return s.Repay(ctx, action)
	case core.ActionTypeSetCollateral:
		return s.SetCollateral(ctx, action)
	case core.ActionTypeLiquidate:
		return s.Liquidate(ctx, action)
	default:
		return nil, core.Errorf(core.ErrInvalidAction, "unknown action %d", action.Type)
	}
}
