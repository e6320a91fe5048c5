package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ErrEOF nothing left to do in this round
var ErrEOF = errors.New("EOF")

// Worker long running worker
type Worker interface {
	Run(ctx context.Context) error
}

// IJob cron job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork one round of a job
type OnWork func(ctx context.Context) error

// BaseJob runs OnWork on the cron schedule, skipping a tick while the
// previous round is still running
type BaseJob struct {
	Cron    *cron.Cron
	OnWork  OnWork
	running int32
}

// NewBaseJob job running fn at spec, e.g. "@every 1m"
func NewBaseJob(spec string, fn OnWork) (*BaseJob, error) {
	job := &BaseJob{
		Cron:   cron.New(cron.WithLocation(time.UTC)),
		OnWork: fn,
	}

	if _, err := job.Cron.AddJob(spec, job); err != nil {
		return nil, err
	}

	return job, nil
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

func (job *BaseJob) Run() {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&job.running, 0)

	_ = job.OnWork(context.Background())
}

// RunJob start the job and stop it once ctx is done
func RunJob(ctx context.Context, job IJob) error {
	if err := job.Start(); err != nil {
		return err
	}

	<-ctx.Done()
	return job.Stop()
}

// TickWorker repeats a round until ctx is done
type TickWorker struct {
	// pause after a round that found nothing to do
	Delay time.Duration
	// pause after a failed round
	ErrDelay time.Duration
}

// StartTick run fn, without pause while it keeps finding work
func (w TickWorker) StartTick(ctx context.Context, fn OnWork) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = time.Second
	}

	if errDelay <= 0 {
		errDelay = 3 * time.Second
	}

	var pause time.Duration
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
			switch err := fn(ctx); {
			case err == nil:
				pause = 0
			case errors.Is(err, ErrEOF):
				pause = delay
			default:
				logger.FromContext(ctx).WithError(err).Debugln("tick failed")
				pause = errDelay
			}
		}
	}
}
