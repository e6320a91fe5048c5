package priceoracle

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"moneymarket/core"
	"moneymarket/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker pulls tickers for every listed reserve and sets them as prices
type Worker struct {
	worker.TickWorker
	updater string
	oraclez core.IOracleService
	marketz core.IMarketService
}

// New new price worker, updater must be an authorised price updater
func New(updater string, interval time.Duration, oraclez core.IOracleService, marketz core.IMarketService) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{Delay: interval, ErrDelay: interval},
		updater:    updater,
		oraclez:    oraclez,
		marketz:    marketz,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "priceoracle")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, w.onWork)
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	reserves, err := w.marketz.Reserves(ctx)
	if err != nil {
		log.WithError(err).Errorln("marketz.Reserves")
		return err
	}

	wg := sync.WaitGroup{}
	for _, r := range reserves {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			_ = w.updatePrice(ctx, symbol)
		}(r.Symbol)
	}

	wg.Wait()
	return worker.ErrEOF
}

func (w *Worker) updatePrice(ctx context.Context, symbol string) error {
	log := logger.FromContext(ctx).WithField("symbol", symbol)

	ticker, err := w.oraclez.PullPriceTicker(ctx, symbol)
	if err != nil {
		log.WithError(err).Errorln("oraclez.PullPriceTicker")
		return err
	}

	source, _ := json.Marshal([]*core.PriceTicker{ticker})
	if err := w.marketz.SetPrice(ctx, w.updater, symbol, ticker.Price, source); err != nil {
		// already priced in this block
		if errors.Is(err, core.ErrPriceThrottled) {
			return nil
		}

		log.WithError(err).Errorln("marketz.SetPrice")
		return err
	}

	return nil
}
