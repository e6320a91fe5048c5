package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	users map[string]*core.User
	finds int
}

func (s *countingStore) Save(ctx context.Context, user *core.User) error {
	s.users[user.MixinID] = user
	return nil
}

func (s *countingStore) Find(ctx context.Context, mixinID string) (*core.User, error) {
	s.finds++
	if user, ok := s.users[mixinID]; ok {
		return user, nil
	}

	return nil, core.Errorf(core.ErrUserNotFound, "user %s", mixinID)
}

func (s *countingStore) List(ctx context.Context, fromID int64, limit int) ([]*core.User, error) {
	return nil, nil
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{users: map[string]*core.User{}}
	users := Cache(store, 8, time.Minute)

	_, err := users.Find(ctx, "alice")
	assert.True(t, errors.Is(err, core.ErrUserNotFound))
	assert.Equal(t, 1, store.finds)

	require.NoError(t, users.Save(ctx, &core.User{MixinID: "alice", Name: "Alice"}))

	for i := 0; i < 3; i++ {
		user, err := users.Find(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "Alice", user.Name)
	}
	assert.Equal(t, 1, store.finds)
}
