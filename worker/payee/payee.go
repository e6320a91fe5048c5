package payee

import (
	"context"
	"fmt"

	"moneymarket/core"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// CheckpointKey id of the last handled notification
	CheckpointKey = "payee_checkpoint"
	limit         = 100
)

// Payee routes inbound transfers to market actions by memo
type Payee struct {
	worker.TickWorker
	notifications core.INotificationStore
	ledgers       core.ILedgerStore
	marketz       core.IMarketService
	property      property.Store
}

// New new payee
func New(
	notifications core.INotificationStore,
	ledgers core.ILedgerStore,
	marketz core.IMarketService,
	property property.Store,
) *Payee {
	return &Payee{
		notifications: notifications,
		ledgers:       ledgers,
		marketz:       marketz,
		property:      property,
	}
}

// Run run worker
func (w *Payee) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "payee")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, w.onWork)
}

func (w *Payee) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.property.Get(ctx, CheckpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", CheckpointKey)
		return err
	}

	notifications, err := w.notifications.List(ctx, uint64(v.Int64()), limit)
	if err != nil {
		log.WithError(err).Errorln("notifications.List")
		return err
	}

	if len(notifications) == 0 {
		return worker.ErrEOF
	}

	for _, n := range notifications {
		if err := w.handleNotification(ctx, n); err != nil {
			return err
		}

		if err := w.property.Save(ctx, CheckpointKey, n.ID); err != nil {
			log.WithError(err).Errorln("property.Save", n.ID)
			return err
		}
	}

	return nil
}

// handleNotification apply the routed action, or refund the transfer when the
// market rejects it. Failures that are not market errors are returned for retry.
func (w *Payee) handleNotification(ctx context.Context, n *core.Notification) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"snapshot": n.SnapshotID,
		"sender":   n.Sender,
		"memo":     n.Memo,
	})
	ctx = logger.WithContext(ctx, log)

	receipt, err := w.apply(ctx, n)
	if err == nil {
		log.WithField("refund", receipt.Refund).Infoln("payee: action applied")
		return nil
	}

	if core.CodeOf(err) == core.ErrUnknown {
		log.WithError(err).Errorln("payee: apply")
		return err
	}

	log.WithError(err).Infoln("payee: rejected, refund")
	return w.refund(ctx, n, core.CodeOf(err))
}

func (w *Payee) apply(ctx context.Context, n *core.Notification) (*core.Receipt, error) {
	action, err := parseMemo(n.Memo)
	if err != nil {
		return nil, err
	}

	var symbol string
	if err := w.ledgers.View(ctx, func(ctx context.Context, ledger core.Ledger) error {
		reserve, err := ledger.FindReserveByAsset(ctx, n.AssetID)
		if err != nil {
			return err
		}

		symbol = reserve.Symbol
		return nil
	}); err != nil {
		return nil, err
	}

	action.TraceID = n.TraceID
	action.Sender = n.Sender
	action.Symbol = symbol
	action.Amount = n.Amount
	action.Funds = n
	action.CreatedAt = n.CreatedAt

	return w.marketz.Handle(ctx, action)
}

func (w *Payee) refund(ctx context.Context, n *core.Notification, code core.ErrorCode) error {
	transfer := &core.Transfer{
		TraceID:  foxuuid.Modify(n.TraceID, "refund"),
		Opponent: n.Sender,
		AssetID:  n.AssetID,
		Amount:   n.Amount,
		Memo:     fmt.Sprintf("refund:%d", code),
	}

	return w.ledgers.Tx(ctx, func(ctx context.Context, ledger core.Ledger) error {
		if reserve, err := ledger.FindReserveByAsset(ctx, n.AssetID); err == nil {
			transfer.Symbol = reserve.Symbol
		}

		return ledger.TransferOut(ctx, transfer)
	})
}
