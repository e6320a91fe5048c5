package compound

import (
	"moneymarket/core"
)

var (
	// LiquidationBonusMin 1x
	LiquidationBonusMin = RateScale
	// LiquidationBonusMax 2x
	LiquidationBonusMax = 2 * RateScale
	// ReserveFactorMax 50%
	ReserveFactorMax = RateScale / 2
)

// ValidateReserveParams check risk and curve parameters
func ValidateReserveParams(p core.ReserveParams) error {
	if err := Require(
		p.MaxLTV >= 0 && p.MaxLTV <= p.LiquidationThreshold && p.LiquidationThreshold <= RateScale,
		core.ErrInvalidRiskParams,
		"require 0 <= max_ltv (%d) <= liquidation_threshold (%d) <= %d", p.MaxLTV, p.LiquidationThreshold, RateScale,
	); err != nil {
		return err
	}

	if err := Require(
		p.LiquidationBonus >= LiquidationBonusMin && p.LiquidationBonus <= LiquidationBonusMax,
		core.ErrInvalidRiskParams,
		"liquidation bonus %d must be between 1x and 2x", p.LiquidationBonus,
	); err != nil {
		return err
	}

	if err := Require(
		p.ReserveFactor >= 0 && p.ReserveFactor <= ReserveFactorMax,
		core.ErrInvalidRiskParams,
		"reserve factor %d must be within [0, %d]", p.ReserveFactor, ReserveFactorMax,
	); err != nil {
		return err
	}

	// a liquidation must never seize more than the position is worth
	if err := Require(
		p.LiquidationThreshold*p.LiquidationBonus < RateScale*RateScale,
		core.ErrInvalidRiskParams,
		"liquidation_threshold x liquidation_bonus must be below 1",
	); err != nil {
		return err
	}

	if err := Require(
		p.OptimalUtilization > 0 && p.OptimalUtilization < RateScale,
		core.ErrInvalidCurveParams,
		"optimal utilization %d must be within (0, %d)", p.OptimalUtilization, RateScale,
	); err != nil {
		return err
	}

	return Require(
		p.BaseRate >= 0 && p.BaseRate <= p.OptimalRate && p.OptimalRate <= p.MaxRate,
		core.ErrInvalidCurveParams,
		"require 0 <= base_rate (%d) <= optimal_rate (%d) <= max_rate (%d)", p.BaseRate, p.OptimalRate, p.MaxRate,
	)
}

// ValidateGlobal check market wide parameters
func ValidateGlobal(g *core.Global) error {
	if err := Require(g.Admin != "", core.ErrInvalidGlobalParams, "admin cannot be empty"); err != nil {
		return err
	}

	if err := Require(g.PriceTTL > 0, core.ErrInvalidGlobalParams, "price ttl must be positive"); err != nil {
		return err
	}

	if err := Require(
		g.CloseFactor > 0 && g.CloseFactor <= RateScale,
		core.ErrInvalidGlobalParams,
		"close factor %d must be within (0, %d]", g.CloseFactor, RateScale,
	); err != nil {
		return err
	}

	if err := Require(
		g.MaxPriceDelta > 0 && g.MaxPriceDelta <= RateScale,
		core.ErrInvalidGlobalParams,
		"max price delta %d must be within (0, %d]", g.MaxPriceDelta, RateScale,
	); err != nil {
		return err
	}

	return Require(
		g.EmergencyBonus >= 0 && g.MaxEmergencyBonus >= 0 && g.MaxEmergencyBonus <= RateScale,
		core.ErrInvalidGlobalParams,
		"emergency bonus %d / max %d out of range", g.EmergencyBonus, g.MaxEmergencyBonus,
	)
}

// EffectiveBonus the collateral reserve's liquidation bonus, raised by the
// emergency bonus in emergency mode while threshold x bonus stays below 1
func EffectiveBonus(r *core.Reserve, g *core.Global) int64 {
	bonus := r.LiquidationBonus
	if !g.EmergencyMode {
		return bonus
	}

	extra := g.EmergencyBonus
	if extra > g.MaxEmergencyBonus {
		extra = g.MaxEmergencyBonus
	}
	bonus += extra

	if bonus > LiquidationBonusMax {
		bonus = LiquidationBonusMax
	}

	if r.LiquidationThreshold > 0 {
		if limit := (RateScale*RateScale - 1) / r.LiquidationThreshold; bonus > limit {
			bonus = limit
		}
	}

	if bonus < r.LiquidationBonus {
		return r.LiquidationBonus
	}

	return bonus
}
