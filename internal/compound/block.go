package compound

import (
	"errors"
	"time"
)

var (
	// ErrInvalidBlockTime seconds per block must be positive
	ErrInvalidBlockTime = errors.New("secondsPerBlock should be greater than zero")
	// ErrBeforeGenesis time before the genesis
	ErrBeforeGenesis = errors.New("time is before genesis")
)

// BlockAt block number of t, counting secondsPerBlock blocks since genesis (unix seconds)
func BlockAt(t time.Time, secondsPerBlock, genesis int64) (int64, error) {
	if secondsPerBlock <= 0 {
		return 0, ErrInvalidBlockTime
	}

	seconds := t.Unix() - genesis
	if seconds < 0 {
		return 0, ErrBeforeGenesis
	}

	return seconds / secondsPerBlock, nil
}

// BlockTime start time of block
func BlockTime(block, secondsPerBlock, genesis int64) time.Time {
	return time.Unix(genesis+block*secondsPerBlock, 0).UTC()
}
