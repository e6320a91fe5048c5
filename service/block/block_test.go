package block

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	s := &service{
		config: Config{Genesis: 1600000000, SecondsPerBlock: 5},
		now: func() time.Time {
			return time.Unix(1600000012, 700)
		},
	}

	assert.Equal(t, time.Unix(1600000012, 0).UTC(), s.Now(ctx))

	block, err := s.CurrentBlock(ctx)
	require.Nil(t, err)
	assert.Equal(t, int64(2), block)

	_, err = s.GetBlock(ctx, time.Unix(1500000000, 0))
	assert.NotNil(t, err)
}
