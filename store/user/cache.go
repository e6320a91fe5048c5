package user

import (
	"context"
	"time"

	"moneymarket/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read through cache of found users
func Cache(store core.IUserStore, size int, exp time.Duration) core.IUserStore {
	return &cacheUserStore{
		IUserStore: store,
		cache:      gcache.New(size).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheUserStore struct {
	core.IUserStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheUserStore) Save(ctx context.Context, user *core.User) error {
	if err := s.IUserStore.Save(ctx, user); err != nil {
		return err
	}

	_ = s.cache.Set(user.MixinID, user)
	return nil
}

func (s *cacheUserStore) Find(ctx context.Context, mixinID string) (*core.User, error) {
	if v, err := s.cache.Get(mixinID); err == nil {
		return v.(*core.User), nil
	}

	v, err, _ := s.sf.Do(mixinID, func() (interface{}, error) {
		user, err := s.IUserStore.Find(ctx, mixinID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(mixinID, user)
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.User), nil
}
