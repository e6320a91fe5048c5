package priceoracle

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"moneymarket/core"
	"moneymarket/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type oracle struct {
	core.IOracleService
}

func (o *oracle) PullPriceTicker(ctx context.Context, symbol string) (*core.PriceTicker, error) {
	if symbol == "ETH" {
		return nil, errors.New("no ticker")
	}

	return &core.PriceTicker{Provider: "test", Symbol: symbol, Price: decimal.NewFromInt(42)}, nil
}

type market struct {
	core.IMarketService
	mu     sync.Mutex
	prices map[string]decimal.Decimal
}

func (m *market) Reserves(ctx context.Context) ([]*core.ReserveView, error) {
	var views []*core.ReserveView
	for _, symbol := range []string{"BTC", "ETH", "USDT"} {
		views = append(views, &core.ReserveView{Reserve: &core.Reserve{Symbol: symbol}})
	}

	return views, nil
}

func (m *market) SetPrice(ctx context.Context, caller, symbol string, price decimal.Decimal, source []byte) error {
	if symbol == "USDT" {
		return core.Errorf(core.ErrPriceThrottled, "priced in this block")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[caller+":"+symbol] = price
	return nil
}

func TestOnWork(t *testing.T) {
	m := &market{prices: map[string]decimal.Decimal{}}
	w := New("oracle", time.Second, &oracle{}, m)

	err := w.onWork(context.Background())
	assert.True(t, errors.Is(err, worker.ErrEOF))
	assert.Len(t, m.prices, 1)
	assert.Equal(t, "42", m.prices["oracle:BTC"].String())
	assert.NoError(t, w.updatePrice(context.Background(), "USDT"))
}
