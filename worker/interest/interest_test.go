package interest

import (
	"context"
	"testing"

	"moneymarket/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type market struct {
	core.IMarketService
	accrued int
}

func (m *market) AccrueAll(ctx context.Context) error {
	m.accrued++
	return nil
}

func TestInterestJob(t *testing.T) {
	m := &market{}
	w, err := New("@every 1m", m)
	require.NoError(t, err)

	w.Run()
	w.Run()
	assert.Equal(t, 2, m.accrued)

	_, err = New("not a spec", m)
	assert.Error(t, err)
}
