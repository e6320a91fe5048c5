package compound

import (
	"time"

	"moneymarket/core"
	"moneymarket/pkg/number"

	"github.com/shopspring/decimal"
)

var (
	rateScale      = decimal.NewFromInt(RateScale)
	secondsPerYear = decimal.NewFromInt(SecondsPerYear)
)

// Utilization utilization rate
// utilization = total_debt / total_liquidity, clamped to [0, 1]
func Utilization(r *core.Reserve) decimal.Decimal {
	if !r.TotalLiquidity.IsPositive() || !r.TotalDebt.IsPositive() {
		return decimal.Zero
	}

	u := number.QuoFloor(r.TotalDebt, r.TotalLiquidity, RatePrecision)
	if u.GreaterThan(decimal.New(1, 0)) {
		return decimal.New(1, 0)
	}

	return u
}

// BorrowRate annual borrow rate in bps at utilization u
//
//	u <= u_opt: r0 + (r_opt - r0) * u / u_opt
//	u >  u_opt: r_opt + (r_max - r_opt) * (u - u_opt) / (1 - u_opt)
func BorrowRate(params core.ReserveParams, u decimal.Decimal) decimal.Decimal {
	uBps := u.Mul(rateScale)
	optimal := decimal.NewFromInt(params.OptimalUtilization)
	r0 := decimal.NewFromInt(params.BaseRate)
	rOpt := decimal.NewFromInt(params.OptimalRate)
	rMax := decimal.NewFromInt(params.MaxRate)

	if params.OptimalUtilization > 0 && uBps.LessThanOrEqual(optimal) {
		slope := number.QuoFloor(rOpt.Sub(r0).Mul(uBps), optimal, RatePrecision)
		return r0.Add(slope)
	}

	if uBps.GreaterThan(rateScale) {
		uBps = rateScale
	}

	rest := rateScale.Sub(optimal)
	if !rest.IsPositive() {
		return rOpt
	}

	slope := number.QuoFloor(rMax.Sub(rOpt).Mul(uBps.Sub(optimal)), rest, RatePrecision)
	return rOpt.Add(slope)
}

// SupplyRate annual supply rate in bps
// supply_rate = borrow_rate * utilization * (1 - reserve_factor)
func SupplyRate(r *core.Reserve) decimal.Decimal {
	u := Utilization(r)
	rate := BorrowRate(r.ReserveParams, u).Mul(u)
	return number.Floor(number.MulBps(rate, RateScale-r.ReserveFactor), RatePrecision)
}

// CurBorrowRate current borrow rate in bps
func CurBorrowRate(r *core.Reserve) decimal.Decimal {
	return BorrowRate(r.ReserveParams, Utilization(r))
}

// Interest interest accrued on debt at rate (bps) over elapsed seconds,
// rounded down to precision
func Interest(debt, rate decimal.Decimal, elapsed int64, precision int32) decimal.Decimal {
	if elapsed <= 0 || !debt.IsPositive() || !rate.IsPositive() {
		return decimal.Zero
	}

	numerator := debt.Mul(rate).Mul(decimal.NewFromInt(elapsed))
	return number.QuoFloor(numerator, rateScale.Mul(secondsPerYear), precision)
}

// Accrue advance the reserve to now, returning the accrued copy
//
// Accruing only happens when the reserve is touched; the input is never modified.
func Accrue(r *core.Reserve, now time.Time) *core.Reserve {
	next := *r
	if !now.After(r.AccruedAt) {
		return &next
	}

	elapsed := now.Unix() - r.AccruedAt.Unix()
	next.AccruedAt = now
	if elapsed <= 0 || !r.TotalDebt.IsPositive() {
		return &next
	}

	interest := Interest(r.TotalDebt, CurBorrowRate(r), elapsed, r.Precision)

	// saturate so both totals stay representable
	limit := MaxAmount(r.Precision)
	headroom := decimal.Min(limit.Sub(r.TotalDebt), limit.Sub(r.TotalLiquidity))
	if headroom.IsNegative() {
		headroom = decimal.Zero
	}
	if interest.GreaterThan(headroom) {
		interest = headroom
	}

	if !interest.IsPositive() {
		return &next
	}

	cut := number.Floor(number.MulBps(interest, r.ReserveFactor), r.Precision)
	next.TotalDebt = r.TotalDebt.Add(interest)
	next.TotalLiquidity = r.TotalLiquidity.Add(interest.Sub(cut))
	next.ProtocolReserve = r.ProtocolReserve.Add(cut)
	return &next
}
