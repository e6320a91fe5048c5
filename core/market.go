package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Valuation aggregated values of an owner's positions in the quote unit
type Valuation struct {
	// Σ collateral value × liquidation threshold
	CollateralValue decimal.Decimal `json:"collateral_value"`
	// Σ collateral value × max ltv
	MaxBorrowableValue decimal.Decimal `json:"max_borrowable_value"`
	DebtValue          decimal.Decimal `json:"debt_value"`
}

// Solvent debt is zero or covered by threshold weighted collateral
func (v *Valuation) Solvent() bool {
	return v.DebtValue.IsZero() || v.CollateralValue.GreaterThanOrEqual(v.DebtValue)
}

// CanBorrow solvent and debt within max ltv
func (v *Valuation) CanBorrow() bool {
	return v.Solvent() && v.DebtValue.LessThanOrEqual(v.MaxBorrowableValue)
}

// Shortfall debt not covered by collateral, zero if solvent
func (v *Valuation) Shortfall() decimal.Decimal {
	if s := v.DebtValue.Sub(v.CollateralValue); s.IsPositive() {
		return s
	}

	return decimal.Zero
}

// HealthFactor collateral / debt, zero without debt
func (v *Valuation) HealthFactor() decimal.Decimal {
	if v.DebtValue.IsZero() {
		return decimal.Zero
	}

	return v.CollateralValue.DivRound(v.DebtValue, 8)
}

// PositionView position with the amounts its shares are worth
type PositionView struct {
	*Position
	Supplied decimal.Decimal `json:"supplied"`
	Borrowed decimal.Decimal `json:"borrowed"`
}

// Account positions and valuation of an owner
type Account struct {
	Owner     string          `json:"owner"`
	Positions []*PositionView `json:"positions"`
	Valuation *Valuation      `json:"valuation"`
}

// ReserveView reserve with its current rates
type ReserveView struct {
	*Reserve
	Utilization decimal.Decimal `json:"utilization"`
	BorrowRate  decimal.Decimal `json:"borrow_rate"`
	SupplyRate  decimal.Decimal `json:"supply_rate"`
}

// IMarketService market interface
type IMarketService interface {
	// user actions
	Handle(ctx context.Context, action *Action) (*Receipt, error)
	Supply(ctx context.Context, action *Action) (*Receipt, error)
	Withdraw(ctx context.Context, action *Action) (*Receipt, error)
	Borrow(ctx context.Context, action *Action) (*Receipt, error)
	Repay(ctx context.Context, action *Action) (*Receipt, error)
	SetCollateral(ctx context.Context, action *Action) (*Receipt, error)
	Liquidate(ctx context.Context, action *Action) (*Receipt, error)

	// admin
	Init(ctx context.Context, admin string) error
	SetPaused(ctx context.Context, caller string, paused bool) error
	SetPriceTTL(ctx context.Context, caller string, seconds int64) error
	SetCloseFactor(ctx context.Context, caller string, closeFactor int64) error
	SetMaxPriceDelta(ctx context.Context, caller string, delta int64) error
	SetEmergency(ctx context.Context, caller string, enabled bool, bonus int64) error
	SetMaxEmergencyBonus(ctx context.Context, caller string, bonus int64) error
	SetUpdaters(ctx context.Context, caller string, updaters []string) error
	AddReserve(ctx context.Context, caller string, reserve *Reserve) error
	UpdateReserve(ctx context.Context, caller, symbol string, params ReserveParams) error
	SetReservePaused(ctx context.Context, caller, symbol string, paused bool) error
	CollectReserve(ctx context.Context, caller, symbol string, amount decimal.Decimal, to, traceID string) error
	SetPrice(ctx context.Context, caller, symbol string, price decimal.Decimal, source []byte) error

	// reads
	Accrue(ctx context.Context, symbol string) (*Reserve, error)
	AccrueAll(ctx context.Context) error
	Reserves(ctx context.Context) ([]*ReserveView, error)
	Account(ctx context.Context, owner string) (*Account, error)
	Global(ctx context.Context) (*Global, error)
}
