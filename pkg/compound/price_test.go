package compound

import (
	"errors"
	"testing"
	"time"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
)

func TestCheckFresh(t *testing.T) {
	now := time.Unix(1600000000, 0)
	price := &core.Price{Symbol: "BTC", Price: d("100"), PricedAt: now.Add(-300 * time.Second)}

	assert.Nil(t, CheckFresh(price, now, 300))
	assert.True(t, errors.Is(CheckFresh(price, now.Add(time.Second), 300), core.ErrPriceStale))
	assert.True(t, errors.Is(CheckFresh(nil, now, 300), core.ErrPriceNotFound))
}

func TestCheckPriceUpdate(t *testing.T) {
	prev := &core.Price{Symbol: "BTC", Price: d("100"), Block: 10}

	cases := []struct {
		name  string
		prev  *core.Price
		price string
		block int64
		code  core.ErrorCode
	}{
		{"first", nil, "12345", 1, 0},
		{"within delta", prev, "120", 11, 0},
		{"down within delta", prev, "80", 11, 0},
		{"beyond delta", prev, "120.01", 11, core.ErrPriceDeltaExceeded},
		{"same block", prev, "101", 10, core.ErrPriceThrottled},
		{"zero", prev, "0", 11, core.ErrInvalidPrice},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := CheckPriceUpdate(c.prev, d(c.price), c.block, 2000)
			if c.code == 0 {
				assert.Nil(t, err)
				return
			}

			assert.True(t, errors.Is(err, c.code), "got %v", err)
		})
	}
}
