package block

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/internal/compound"
)

// Config block clock settings
type Config struct {
	// Genesis unix seconds of block 0
	Genesis int64 `json:"genesis"`
	// SecondsPerBlock block time
	SecondsPerBlock int64 `json:"seconds_per_block"`
}

type service struct {
	config Config
	now    func() time.Time
}

// New new block service
func New(config Config) core.IBlockService {
	return &service{
		config: config,
		now:    time.Now,
	}
}

// Now current time, truncated to seconds
func (s *service) Now(ctx context.Context) time.Time {
	return s.now().UTC().Truncate(time.Second)
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return s.GetBlock(ctx, s.Now(ctx))
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	return compound.BlockAt(t, s.config.SecondsPerBlock, s.config.Genesis)
}
