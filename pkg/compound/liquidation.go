package compound

import (
	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

// Seizure both sides of a liquidation, accrued reserves and current positions
type Seizure struct {
	Valuation *core.Valuation

	DebtReserve  *core.Reserve
	DebtPosition *core.Position
	DebtPrice    decimal.Decimal

	CollateralReserve  *core.Reserve
	CollateralPosition *core.Position
	CollateralPrice    decimal.Decimal

	CloseFactor int64
	// Bonus effective liquidation bonus of the collateral reserve, see EffectiveBonus
	Bonus int64
}

// LiquidationResult sized liquidation
type LiquidationResult struct {
	RepayValue  decimal.Decimal
	Repay       Asset
	RepayShares Asset
	SeizeValue  decimal.Decimal
	Seize       Asset
	SeizeShares Asset
}

// ParityRepayValue the repay value that brings the account back to collateral == debt
//
//	shortfall / (1 - threshold * bonus), rounded up
func ParityRepayValue(shortfall decimal.Decimal, threshold, bonus int64) (decimal.Decimal, error) {
	scale := RateScale * RateScale
	if err := Require(threshold*bonus < scale, core.ErrInvalidRiskParams, "threshold x bonus must be below 1"); err != nil {
		return decimal.Zero, err
	}

	denominator := decimal.NewFromInt(scale - threshold*bonus)
	return number.QuoCeil(shortfall.Mul(decimal.NewFromInt(scale)), denominator, ValuePrecision), nil
}

// SizeLiquidation size a liquidation of requested debt tokens
func SizeLiquidation(s *Seizure, requested decimal.Decimal) (*LiquidationResult, error) {
	if err := Require(requested.IsPositive(), core.ErrInvalidAmount, "liquidate amount must be positive"); err != nil {
		return nil, err
	}

	if err := Require(!s.Valuation.Solvent(), core.ErrNotLiquidatable, "account is not liquidatable"); err != nil {
		return nil, err
	}

	if err := Require(s.DebtPrice.IsPositive() && s.CollateralPrice.IsPositive(), core.ErrPriceNotFound, "price not available"); err != nil {
		return nil, err
	}

	owed, err := BorrowedAmount(s.DebtReserve, s.DebtPosition)
	if err != nil {
		return nil, err
	}

	if err := Require(owed.Amount.IsPositive(), core.ErrNoDebt, "no %s debt to repay", s.DebtReserve.Symbol); err != nil {
		return nil, err
	}

	if err := Require(
		s.CollateralPosition.Collateral && s.CollateralPosition.SupplyShares.IsPositive(),
		core.ErrInsufficientCollateral,
		"no %s collateral to seize", s.CollateralReserve.Symbol,
	); err != nil {
		return nil, err
	}

	parity, err := ParityRepayValue(s.Valuation.Shortfall(), s.CollateralReserve.LiquidationThreshold, s.Bonus)
	if err != nil {
		return nil, err
	}

	value := decimal.Min(
		requested.Mul(s.DebtPrice),
		number.MulBps(s.Valuation.DebtValue, s.CloseFactor),
		parity,
	)

	repay := ReserveAsset(s.DebtReserve, number.QuoCeil(value, s.DebtPrice, s.DebtReserve.Precision))
	if repay.Amount.GreaterThan(owed.Amount) {
		repay = owed
	}

	if err := Require(repay.Amount.IsPositive(), core.ErrInvalidAmount, "repay amount rounds to zero"); err != nil {
		return nil, err
	}

	ts, ta := BorrowShares(s.DebtReserve)
	repayShares, err := SharesFromAmountFloor(repay, ts, ta)
	if err != nil {
		return nil, err
	}

	if repayShares.Amount.GreaterThan(s.DebtPosition.BorrowShares) {
		repayShares = ReserveAsset(s.DebtReserve, s.DebtPosition.BorrowShares)
	}

	seizeValue := number.MulBps(Value(repay, s.DebtPrice), s.Bonus)
	seize := ReserveAsset(s.CollateralReserve, number.QuoFloor(seizeValue, s.CollateralPrice, s.CollateralReserve.Precision))
	if err := Require(seize.Amount.IsPositive(), core.ErrInvalidAmount, "seize amount rounds to zero"); err != nil {
		return nil, err
	}

	cs, ca := SupplyShares(s.CollateralReserve)
	seizeShares, err := SharesFromAmountCeil(seize, cs, ca)
	if err != nil {
		return nil, err
	}

	if err := Require(
		seizeShares.Amount.LessThanOrEqual(s.CollateralPosition.SupplyShares),
		core.ErrInsufficientCollateral,
		"seize %s exceeds the borrower's collateral", seize,
	); err != nil {
		return nil, err
	}

	if err := Require(
		seize.Amount.LessThanOrEqual(s.CollateralReserve.Available()),
		core.ErrInsufficientLiquidity,
		"%s pool cannot pay out %s", s.CollateralReserve.Symbol, seize,
	); err != nil {
		return nil, err
	}

	return &LiquidationResult{
		RepayValue:  value,
		Repay:       repay,
		RepayShares: repayShares,
		SeizeValue:  seizeValue,
		Seize:       seize,
		SeizeShares: seizeShares,
	}, nil
}
