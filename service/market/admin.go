package market

import (
	"context"
	"errors"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// Init create the global state with defaults, once
func (s *service) Init(ctx context.Context, admin string) error {
	return s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		if _, err := ledger.Global(ctx); err == nil {
			return core.Errorf(core.ErrAlreadyInitialized, "market already initialized")
		} else if !errors.Is(err, core.ErrMarketNotInitialized) {
			return err
		}

		global := core.NewGlobal(admin)
		if err := compound.ValidateGlobal(global); err != nil {
			return err
		}

		return ledger.SaveGlobal(ctx, global)
	})
}

// updateGlobal apply fn to the global state as the admin
func (s *service) updateGlobal(ctx context.Context, caller string, fn func(global *core.Global)) error {
	return s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		stored, err := ledger.Global(ctx)
		if err != nil {
			return err
		}

		if err := requireAdmin(stored, caller); err != nil {
			return err
		}

		global := *stored
		fn(&global)

		if err := compound.ValidateGlobal(&global); err != nil {
			return err
		}

		return ledger.SaveGlobal(ctx, &global)
	})
}

func requireAdmin(global *core.Global, caller string) error {
	return compound.Require(global.IsAdmin(caller), core.ErrUnauthorized, "%s is not the admin", caller)
}

func (s *service) SetPaused(ctx context.Context, caller string, paused bool) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.Paused = paused
	})
}

func (s *service) SetPriceTTL(ctx context.Context, caller string, seconds int64) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.PriceTTL = seconds
	})
}

func (s *service) SetCloseFactor(ctx context.Context, caller string, closeFactor int64) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.CloseFactor = closeFactor
	})
}

func (s *service) SetMaxPriceDelta(ctx context.Context, caller string, delta int64) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.MaxPriceDelta = delta
	})
}

// SetEmergency switch emergency mode, bonus is the extra liquidation bonus in bps
func (s *service) SetEmergency(ctx context.Context, caller string, enabled bool, bonus int64) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.EmergencyMode = enabled
		global.EmergencyBonus = bonus
	})
}

// SetMaxEmergencyBonus cap the extra liquidation bonus of emergency mode, bps
func (s *service) SetMaxEmergencyBonus(ctx context.Context, caller string, bonus int64) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.MaxEmergencyBonus = bonus
	})
}

// SetUpdaters replace the users allowed to set prices
func (s *service) SetUpdaters(ctx context.Context, caller string, updaters []string) error {
	return s.updateGlobal(ctx, caller, func(global *core.Global) {
		global.Updaters = append(global.Updaters[:0:0], updaters...)
	})
}

// AddReserve list a new asset
func (s *service) AddReserve(ctx context.Context, caller string, reserve *core.Reserve) error {
	log := logger.FromContext(ctx).WithField("symbol", reserve.Symbol).WithFields(logrus.Fields(structs.Map(reserve.ReserveParams)))

	now := s.blocks.Now(ctx)
	err := s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		global, err := ledger.Global(ctx)
		if err != nil {
			return err
		}

		if err := requireAdmin(global, caller); err != nil {
			return err
		}

		if err := compound.Require(
			reserve.Symbol != "" && reserve.AssetID != "",
			core.ErrInvalidRiskParams,
			"symbol and asset id are required",
		); err != nil {
			return err
		}

		if err := compound.Require(
			reserve.Precision >= 0 && reserve.Precision <= compound.ValuePrecision,
			core.ErrInvalidRiskParams,
			"precision %d out of range", reserve.Precision,
		); err != nil {
			return err
		}

		if err := compound.ValidateReserveParams(reserve.ReserveParams); err != nil {
			return err
		}

		if _, err := ledger.FindReserve(ctx, reserve.Symbol); err == nil {
			return core.Errorf(core.ErrReserveExists, "reserve %s exists", reserve.Symbol)
		} else if !errors.Is(err, core.ErrReserveNotFound) {
			return err
		}

		if _, err := ledger.FindReserveByAsset(ctx, reserve.AssetID); err == nil {
			return core.Errorf(core.ErrReserveExists, "asset %s already listed", reserve.AssetID)
		} else if !errors.Is(err, core.ErrReserveNotFound) {
			return err
		}

		reserve.TotalLiquidity = decimal.Zero
		reserve.TotalDebt = decimal.Zero
		reserve.TotalSupplyShares = decimal.Zero
		reserve.TotalBorrowShares = decimal.Zero
		reserve.ProtocolReserve = decimal.Zero
		reserve.AccruedAt = now
		return ledger.SaveReserve(ctx, reserve)
	})

	if err != nil {
		log.WithError(err).Errorln("market.AddReserve")
		return err
	}

	log.Infoln("market: reserve added")
	return nil
}

// UpdateReserve accrue at the old curve, then apply params
func (s *service) UpdateReserve(ctx context.Context, caller, symbol string, params core.ReserveParams) error {
	return s.updateReserve(ctx, caller, symbol, func(ctx context.Context, ledger core.Ledger, reserve *core.Reserve) error {
		if err := compound.ValidateReserveParams(params); err != nil {
			return err
		}

		reserve.ReserveParams = params
		return nil
	})
}

func (s *service) SetReservePaused(ctx context.Context, caller, symbol string, paused bool) error {
	return s.updateReserve(ctx, caller, symbol, func(ctx context.Context, ledger core.Ledger, reserve *core.Reserve) error {
		reserve.Paused = paused
		return nil
	})
}

// CollectReserve send amount of the protocol reserve to the given user
func (s *service) CollectReserve(ctx context.Context, caller, symbol string, amount decimal.Decimal, to, traceID string) error {
	return s.updateReserve(ctx, caller, symbol, func(ctx context.Context, ledger core.Ledger, reserve *core.Reserve) error {
		if err := compound.Require(to != "" && traceID != "", core.ErrInvalidAction, "receiver and trace id are required"); err != nil {
			return err
		}

		collect, err := reserveAmount(reserve, amount, "collect")
		if err != nil {
			return err
		}

		if err := compound.Require(
			collect.Amount.LessThanOrEqual(reserve.ProtocolReserve),
			core.ErrInsufficientReserve,
			"collect %s exceeds the protocol reserve %s", collect, reserve.ProtocolReserve,
		); err != nil {
			return err
		}

		if err := compound.Require(
			collect.Amount.LessThanOrEqual(reserve.Cash()),
			core.ErrInsufficientLiquidity,
			"collect %s exceeds cash on hand", collect,
		); err != nil {
			return err
		}

		reserve.ProtocolReserve = reserve.ProtocolReserve.Sub(collect.Amount)
		return ledger.TransferOut(ctx, newTransfer(traceID, reserve, to, collect, "collect reserve"))
	})
}

func (s *service) updateReserve(
	ctx context.Context,
	caller, symbol string,
	fn func(ctx context.Context, ledger core.Ledger, reserve *core.Reserve) error,
) error {
	log := logger.FromContext(ctx).WithField("symbol", symbol)
	now := s.blocks.Now(ctx)

	err := s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		global, err := ledger.Global(ctx)
		if err != nil {
			return err
		}

		if err := requireAdmin(global, caller); err != nil {
			return err
		}

		reserve, err := loadReserve(ctx, ledger, symbol, now)
		if err != nil {
			return err
		}

		if err := fn(ctx, ledger, reserve); err != nil {
			return err
		}

		return ledger.SaveReserve(ctx, reserve)
	})

	if err != nil {
		log.WithError(err).Errorln("market.updateReserve")
	}

	return err
}
