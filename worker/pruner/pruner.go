package pruner

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/worker"
	"moneymarket/worker/payee"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
)

// Pruner drops inbound notifications that payee has already handled
type Pruner struct {
	*worker.BaseJob
	notifications core.INotificationStore
	property      property.Store
	retention     time.Duration
}

// New new pruner job, notifications older than retention are removed once
// the payee checkpoint has passed them
func New(spec string, retention time.Duration, notifications core.INotificationStore, property property.Store) (*Pruner, error) {
	w := &Pruner{
		notifications: notifications,
		property:      property,
		retention:     retention,
	}

	job, err := worker.NewBaseJob(spec, w.onWork)
	if err != nil {
		return nil, err
	}

	w.BaseJob = job
	return w, nil
}

func (w *Pruner) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pruner")

	v, err := w.property.Get(ctx, payee.CheckpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get", payee.CheckpointKey)
		return err
	}

	return w.prune(logger.WithContext(ctx, log), uint64(v.Int64()), time.Now())
}

func (w *Pruner) prune(ctx context.Context, handled uint64, now time.Time) error {
	if handled == 0 {
		return nil
	}

	log := logger.FromContext(ctx)

	deleted, err := w.notifications.DeleteBefore(ctx, handled, now.Add(-w.retention))
	if err != nil {
		log.WithError(err).Errorln("notifications.DeleteBefore")
		return err
	}

	if deleted > 0 {
		log.Infof("%d notifications pruned", deleted)
	}

	return nil
}
