package cashier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"moneymarket/core"
	"moneymarket/worker"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transferStore struct {
	core.ITransferStore
	mu        sync.Mutex
	transfers []*core.Transfer
}

func (s *transferStore) ListPending(ctx context.Context, direction core.TransferDirection, limit int) ([]*core.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*core.Transfer
	for _, t := range s.transfers {
		if t.Direction == direction && t.Status == core.TransferStatusPending && len(out) < limit {
			out = append(out, t)
		}
	}

	return out, nil
}

func (s *transferStore) MarkDone(ctx context.Context, transfer *core.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transfer.Status = core.TransferStatusDone
	return nil
}

type wallet struct {
	core.IWalletService
	mu   sync.Mutex
	sent []string
	fail string
}

func (w *wallet) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	if transfer.TraceID == w.fail {
		return errors.New("network")
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.sent = append(w.sent, transfer.TraceID)
	return nil
}

func newTransfers() *transferStore {
	s := &transferStore{}
	for _, trace := range []string{"a", "b", "c"} {
		s.transfers = append(s.transfers, &core.Transfer{
			TraceID:   trace,
			Direction: core.TransferDirectionOut,
			Amount:    decimal.NewFromInt(1),
		})
	}

	s.transfers = append(s.transfers, &core.Transfer{TraceID: "in", Direction: core.TransferDirectionIn})
	return s
}

func TestCashier(t *testing.T) {
	ctx := context.Background()

	for _, capacity := range []int64{1, 3} {
		store, walletz := newTransfers(), &wallet{}
		w := New(store, walletz, Config{Batch: 10, Capacity: capacity})

		f := w.sync
		if capacity > 1 {
			f = w.parallel(capacity)
		}

		require.NoError(t, w.onWork(ctx, f))
		assert.ElementsMatch(t, []string{"a", "b", "c"}, walletz.sent)
		assert.True(t, errors.Is(w.onWork(ctx, f), worker.ErrEOF))
	}
}

func TestCashierKeepsFailedTransfersPending(t *testing.T) {
	ctx := context.Background()
	store, walletz := newTransfers(), &wallet{fail: "b"}
	w := New(store, walletz, Config{Batch: 10, Capacity: 1})

	assert.Error(t, w.onWork(ctx, w.sync))

	pending, _ := store.ListPending(ctx, core.TransferDirectionOut, 10)
	require.Len(t, pending, 2)
	assert.Equal(t, "b", pending[0].TraceID)
}
