package compound

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// Holding a position together with its accrued reserve and fresh price
type Holding struct {
	Reserve  *core.Reserve
	Position *core.Position
	Price    decimal.Decimal
}

// Contributes whether the position adds collateral or debt and so needs a price
func Contributes(p *core.Position) bool {
	return p.BorrowShares.IsPositive() || (p.Collateral && p.SupplyShares.IsPositive())
}

// Value amount in the quote unit
func Value(amount Asset, price decimal.Decimal) decimal.Decimal {
	return amount.Amount.Mul(price)
}

// Valuate aggregate the holdings of one owner
func Valuate(holdings []*Holding) (*core.Valuation, error) {
	v := &core.Valuation{
		CollateralValue:    decimal.Zero,
		MaxBorrowableValue: decimal.Zero,
		DebtValue:          decimal.Zero,
	}

	for _, h := range holdings {
		if !Contributes(h.Position) {
			continue
		}

		if err := Require(h.Price.IsPositive(), core.ErrPriceNotFound, "missing price for %s", h.Reserve.Symbol); err != nil {
			return nil, err
		}

		if h.Position.Collateral {
			supplied, err := SuppliedAmount(h.Reserve, h.Position)
			if err != nil {
				return nil, err
			}

			if supplied.Amount.IsPositive() {
				value := Value(supplied, h.Price)
				v.CollateralValue = v.CollateralValue.Add(number.MulBps(value, h.Reserve.LiquidationThreshold))
				v.MaxBorrowableValue = v.MaxBorrowableValue.Add(number.MulBps(value, h.Reserve.MaxLTV))
			}
		}

		borrowed, err := BorrowedAmount(h.Reserve, h.Position)
		if err != nil {
			return nil, err
		}

		if borrowed.Amount.IsPositive() {
			v.DebtValue = v.DebtValue.Add(Value(borrowed, h.Price))
		}
	}

	return v, nil
}
