package market

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"

	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type service struct {
	ledgers core.ILedgerStore
	blocks  core.IBlockService
}

// New new market service
func New(
	ledgers core.ILedgerStore,
	blocks core.IBlockService,
) core.IMarketService {
	return &service{
		ledgers: ledgers,
		blocks:  blocks,
	}
}

// actionFunc one action against the ledger at now
type actionFunc func(ctx context.Context, ledger core.Ledger, now time.Time) (*core.Receipt, error)

// run execute fn in one transaction, spending action.Funds through an escrow
// and refunding what is left. A traced action is applied once, a replay of
// the trace gets the stored receipt back.
func (s *service) run(ctx context.Context, action *core.Action, fn actionFunc) (*core.Receipt, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"trace":  action.TraceID,
		"action": action.Type.String(),
		"sender": action.Sender,
		"symbol": action.Symbol,
		"amount": action.Amount,
	})
	ctx = logger.WithContext(ctx, log)

	now := s.now(ctx, action)

	var (
		receipt *core.Receipt
		replay  bool
	)
	err := s.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		if action.TraceID != "" {
			applied, err := ledger.FindAction(ctx, action.TraceID)
			if err != nil {
				return err
			}

			if applied.ID > 0 {
				r, err := replayReceipt(action, applied)
				if err != nil {
					return err
				}

				receipt, replay = r, true
				return nil
			}
		}

		var e *escrow
		if action.Funds != nil {
			e = newEscrow(ledger, action.Funds)
			ledger = e
		}

		r, err := fn(ctx, ledger, now)
		if err != nil {
			return err
		}

		if e != nil {
			refund, err := e.refund(ctx)
			if err != nil {
				return err
			}

			r.Refund = refund
		}

		if action.TraceID != "" {
			data, err := json.Marshal(r)
			if err != nil {
				return err
			}

			if err := ledger.SaveAction(ctx, &core.ActionLog{
				TraceID: action.TraceID,
				Type:    action.Type,
				Sender:  action.Sender,
				Receipt: data,
			}); err != nil {
				return err
			}
		}

		receipt = r
		return nil
	})

	if err != nil {
		log.WithError(err).Infoln("market: action rejected")
		return nil, err
	}

	if replay {
		log.Infoln("market: trace already applied")
		return receipt, nil
	}

	log.WithField("shares", receipt.Shares).Debugln("market: action done")
	return receipt, nil
}

// replayReceipt the receipt stored for a trace applied to the same action
func replayReceipt(action *core.Action, applied *core.ActionLog) (*core.Receipt, error) {
	if applied.Type != action.Type || applied.Sender != action.Sender {
		return nil, core.Errorf(core.ErrTraceConflict,
			"trace %s already applied to %s by %s", action.TraceID, applied.Type, applied.Sender)
	}

	var receipt core.Receipt
	if err := json.Unmarshal(applied.Receipt, &receipt); err != nil {
		return nil, err
	}

	return &receipt, nil
}

// now action time, the block clock for direct calls
func (s *service) now(ctx context.Context, action *core.Action) time.Time {
	if action != nil && !action.CreatedAt.IsZero() {
		return action.CreatedAt.UTC()
	}

	return s.blocks.Now(ctx)
}

func requireActive(global *core.Global) error {
	return compound.Require(!global.Paused, core.ErrMarketPaused, "market is paused")
}

func requireReserveActive(reserve *core.Reserve) error {
	return compound.Require(!reserve.Paused, core.ErrReservePaused, "reserve %s is paused", reserve.Symbol)
}

func requirePositive(amount decimal.Decimal, op string) error {
	return compound.Require(amount.IsPositive(), core.ErrInvalidAmount, "%s amount must be positive", op)
}

// loadReserve the reserve accrued to now, a copy of the stored record
func loadReserve(ctx context.Context, ledger core.Ledger, symbol string, now time.Time) (*core.Reserve, error) {
	reserve, err := ledger.FindReserve(ctx, symbol)
	if err != nil {
		return nil, err
	}

	return compound.Accrue(reserve, now), nil
}

// loadPosition a copy of the owner's position, empty if never touched
func loadPosition(ctx context.Context, ledger core.Ledger, owner, symbol string) (*core.Position, error) {
	position, err := ledger.FindPosition(ctx, owner, symbol)
	if err != nil {
		return nil, err
	}

	p := *position
	return &p, nil
}

// freshPrice the symbol's price, rejected when older than the ttl
func freshPrice(ctx context.Context, ledger core.Ledger, global *core.Global, symbol string, now time.Time) (decimal.Decimal, error) {
	price, err := ledger.FindPrice(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	if err := compound.CheckFresh(price, now, global.PriceTTL); err != nil {
		return decimal.Zero, err
	}

	return price.Price, nil
}

// newTransfer transfer of amount, traced back to the action by memo
func newTransfer(traceID string, reserve *core.Reserve, opponent string, amount compound.Asset, memo string) *core.Transfer {
	return &core.Transfer{
		TraceID:  foxuuid.Modify(traceID, memo),
		Opponent: opponent,
		Symbol:   reserve.Symbol,
		AssetID:  reserve.AssetID,
		Amount:   amount.Amount,
		Memo:     memo,
	}
}

func isPriceUnavailable(err error) bool {
	return errors.Is(err, core.ErrPriceNotFound) || errors.Is(err, core.ErrPriceStale)
}

// reserveAmount action amount quantised to the reserve precision
func reserveAmount(reserve *core.Reserve, amount decimal.Decimal, op string) (compound.Asset, error) {
	asset := compound.ReserveAsset(reserve, amount)
	return asset, requirePositive(asset.Amount, op)
}
