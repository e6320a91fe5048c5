package compound

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// Shares are tagged with the symbol of the reserve they claim.
//
// Rounding always favours the pool:
//   - supply and repay use SharesFromAmountFloor
//   - borrow, withdraw and seize use SharesFromAmountCeil
//   - AmountFromSharesFloor gives what a share balance is entitled to

// SharesFromAmountFloor floor(amount * total_shares / total_amount), 1:1 on an empty pool
func SharesFromAmountFloor(amount, totalShares, totalAmount Asset) (Asset, error) {
	return sharesFromAmount(amount, totalShares, totalAmount, number.QuoFloor)
}

// SharesFromAmountCeil ceil(amount * total_shares / total_amount), 1:1 on an empty pool
func SharesFromAmountCeil(amount, totalShares, totalAmount Asset) (Asset, error) {
	return sharesFromAmount(amount, totalShares, totalAmount, number.QuoCeil)
}

// AmountFromSharesFloor floor(shares * total_amount / total_shares), zero on an empty pool
func AmountFromSharesFloor(shares, totalShares, totalAmount Asset) (Asset, error) {
	if err := checkOperands(shares, totalShares, totalAmount); err != nil {
		return shares, err
	}

	if totalShares.IsZero() || totalAmount.IsZero() {
		return totalAmount.with(decimal.Zero), nil
	}

	amount := number.QuoFloor(shares.Amount.Mul(totalAmount.Amount), totalShares.Amount, totalAmount.Precision)
	return totalAmount.with(amount).check()
}

func sharesFromAmount(amount, totalShares, totalAmount Asset, quo func(a, b decimal.Decimal, p int32) decimal.Decimal) (Asset, error) {
	if err := checkOperands(amount, totalShares, totalAmount); err != nil {
		return amount, err
	}

	if totalShares.IsZero() || totalAmount.IsZero() {
		return totalShares.with(amount.Amount).check()
	}

	shares := quo(amount.Amount.Mul(totalShares.Amount), totalAmount.Amount, totalShares.Precision)
	return totalShares.with(shares).check()
}

func checkOperands(assets ...Asset) error {
	for idx, a := range assets {
		if idx > 0 {
			if err := assets[0].sameAs(a); err != nil {
				return err
			}
		}

		if a.Amount.IsNegative() {
			return core.Errorf(core.ErrNegative, "negative operand %s", a)
		}
	}

	return nil
}

// SupplyShares reserve's supply side totals
func SupplyShares(r *core.Reserve) (totalShares, totalAmount Asset) {
	return ReserveAsset(r, r.TotalSupplyShares), ReserveAsset(r, r.TotalLiquidity)
}

// BorrowShares reserve's borrow side totals
func BorrowShares(r *core.Reserve) (totalShares, totalAmount Asset) {
	return ReserveAsset(r, r.TotalBorrowShares), ReserveAsset(r, r.TotalDebt)
}

// SuppliedAmount amount the position's supply shares are worth
func SuppliedAmount(r *core.Reserve, p *core.Position) (Asset, error) {
	ts, ta := SupplyShares(r)
	return AmountFromSharesFloor(ReserveAsset(r, p.SupplyShares), ts, ta)
}

// BorrowedAmount amount the position owes
func BorrowedAmount(r *core.Reserve, p *core.Position) (Asset, error) {
	ts, ta := BorrowShares(r)
	return AmountFromSharesFloor(ReserveAsset(r, p.BorrowShares), ts, ta)
}
