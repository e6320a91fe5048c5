package price

import (
	"context"
	"time"

	"moneymarket/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

const allKey = "_all"

// Cache read through price cache, entries expire after exp
func Cache(db *db.DB, store core.IPriceStore, size int, exp time.Duration) core.IPriceReader {
	return &cachePriceReader{
		db:    db,
		store: store,
		cache: gcache.New(size).LRU().Expiration(exp).Build(),
		sf:    &singleflight.Group{},
	}
}

type cachePriceReader struct {
	db    *db.DB
	store core.IPriceStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cachePriceReader) FindPrice(ctx context.Context, symbol string) (*core.Price, error) {
	if v, err := s.cache.Get(symbol); err == nil {
		return v.(*core.Price), nil
	}

	v, err, _ := s.sf.Do(symbol, func() (interface{}, error) {
		price, err := s.store.Find(ctx, s.db, symbol)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(symbol, price)
		return price, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Price), nil
}

func (s *cachePriceReader) ListPrices(ctx context.Context) ([]*core.Price, error) {
	if v, err := s.cache.Get(allKey); err == nil {
		return v.([]*core.Price), nil
	}

	v, err, _ := s.sf.Do(allKey, func() (interface{}, error) {
		prices, err := s.store.All(ctx, s.db)
		if err != nil {
			return nil, err
		}

		_ = s.cache.Set(allKey, prices)
		return prices, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]*core.Price), nil
}
