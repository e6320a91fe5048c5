package core

import (
	"context"
	"time"
)

// IBlockService block service interface, a block is one ledger step
type IBlockService interface {
	Now(ctx context.Context) time.Time
	GetBlock(ctx context.Context, t time.Time) (int64, error)
	CurrentBlock(ctx context.Context) (int64, error)
}
