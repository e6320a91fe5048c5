package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	var cfg Config
	defaultConfig(&cfg)

	assert.EqualValues(t, 5, cfg.Block.SecondsPerBlock)
	assert.Equal(t, 1, cfg.Oracle.Threshold)
	assert.Equal(t, 256, cfg.Cache.Size)
	assert.EqualValues(t, 5, cfg.Cache.TTL)

	cfg.Block.SecondsPerBlock = 3
	defaultConfig(&cfg)
	assert.EqualValues(t, 3, cfg.Block.SecondsPerBlock)
}
