package pruner

import (
	"context"
	"errors"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notifications struct {
	core.INotificationStore
	items []*core.Notification
	err   error
}

func (s *notifications) DeleteBefore(ctx context.Context, toID uint64, before time.Time) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}

	var kept []*core.Notification
	for _, n := range s.items {
		if n.ID > toID || !n.CreatedAt.Before(before) {
			kept = append(kept, n)
		}
	}

	deleted := len(s.items) - len(kept)
	s.items = kept
	return int64(deleted), nil
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1600000000, 0)

	store := &notifications{
		items: []*core.Notification{
			{ID: 1, CreatedAt: now.Add(-72 * time.Hour)},
			{ID: 2, CreatedAt: now.Add(-72 * time.Hour)},
			{ID: 3, CreatedAt: now.Add(-time.Hour)},
			{ID: 4, CreatedAt: now.Add(-72 * time.Hour)},
		},
	}

	w, err := New("@every 10m", 48*time.Hour, store, nil)
	require.NoError(t, err)

	t.Run("nothing handled", func(t *testing.T) {
		require.NoError(t, w.prune(ctx, 0, now))
		assert.Len(t, store.items, 4)
	})

	t.Run("handled and expired", func(t *testing.T) {
		require.NoError(t, w.prune(ctx, 3, now))
		if assert.Len(t, store.items, 2) {
			assert.Equal(t, uint64(3), store.items[0].ID)
			assert.Equal(t, uint64(4), store.items[1].ID)
		}
	})

	t.Run("store error", func(t *testing.T) {
		store.err = errors.New("db closed")
		assert.Error(t, w.prune(ctx, 4, now))
	})
}
