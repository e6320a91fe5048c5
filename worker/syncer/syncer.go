package syncer

import (
	"context"

	"moneymarket/core"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

const (
	checkpointKey = "syncer_checkpoint"
	limit         = 500
)

// Syncer turns inbound wallet snapshots into notifications
type Syncer struct {
	worker.TickWorker
	walletz       core.IWalletService
	notifications core.INotificationStore
	property      property.Store
}

// New new sync worker
func New(
	walletz core.IWalletService,
	notifications core.INotificationStore,
	property property.Store,
) *Syncer {
	return &Syncer{
		walletz:       walletz,
		notifications: notifications,
		property:      property,
	}
}

// Run run worker
func (w *Syncer) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "syncer")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, w.onWork)
}

func (w *Syncer) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.property.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", checkpointKey)
		return err
	}

	snapshots, cursor, err := w.walletz.PullSnapshots(ctx, v.String(), limit)
	if err != nil {
		log.WithError(err).Errorln("walletz.PullSnapshots")
		return err
	}

	for _, snapshot := range snapshots {
		n, ok := notificationOf(snapshot)
		if !ok {
			continue
		}

		if err := w.notifications.Save(ctx, n); err != nil {
			log.WithError(err).Errorln("notifications.Save", snapshot.SnapshotID)
			return err
		}
	}

	if err := w.property.Save(ctx, checkpointKey, cursor); err != nil {
		log.WithError(err).Errorln("property.Save", checkpointKey)
		return err
	}

	if len(snapshots) < limit {
		return worker.ErrEOF
	}

	return nil
}

// notificationOf inbound transfers of the dapp only
func notificationOf(snapshot *core.Snapshot) (*core.Notification, bool) {
	if snapshot.UserID == "" || snapshot.OpponentID == "" || !snapshot.Amount.IsPositive() {
		return nil, false
	}

	traceID := snapshot.TraceID
	if traceID == "" {
		traceID = snapshot.SnapshotID
	}

	return &core.Notification{
		SnapshotID: snapshot.SnapshotID,
		TraceID:    traceID,
		Sender:     snapshot.OpponentID,
		AssetID:    snapshot.AssetID,
		Amount:     snapshot.Amount,
		Memo:       snapshot.Memo,
		CreatedAt:  snapshot.CreatedAt,
	}, true
}
