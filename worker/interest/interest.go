package interest

import (
	"context"

	"moneymarket/core"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker accrues every reserve on a schedule so that read apis stay current
// between user actions
type Worker struct {
	*worker.BaseJob
	marketz core.IMarketService
}

// New new interest worker, spec is a cron spec such as "@every 1m"
func New(spec string, marketz core.IMarketService) (*Worker, error) {
	w := &Worker{marketz: marketz}

	job, err := worker.NewBaseJob(spec, w.onWork)
	if err != nil {
		return nil, err
	}

	w.BaseJob = job
	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")

	if err := w.marketz.AccrueAll(ctx); err != nil {
		log.WithError(err).Errorln("marketz.AccrueAll")
		return err
	}

	log.Debugln("reserves accrued")
	return nil
}
