package request

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listTransfers struct {
	From  uint64 `json:"from"`
	Limit int    `json:"limit" valid:"range(1|500)"`
}

type action struct {
	Type   string `json:"type" valid:"in(withdraw|borrow|set_collateral),required"`
	Symbol string `json:"symbol" valid:"required"`
}

func TestBindQuery(t *testing.T) {
	var q listTransfers
	r := httptest.NewRequest("GET", "/transfers?from=12&limit=50&other=x", nil)
	require.NoError(t, BindQuery(r, &q))
	assert.EqualValues(t, 12, q.From)
	assert.Equal(t, 50, q.Limit)

	r = httptest.NewRequest("GET", "/transfers?limit=1000", nil)
	assert.Error(t, BindQuery(r, &listTransfers{}))
}

func TestBindJSON(t *testing.T) {
	var a action
	r := httptest.NewRequest("POST", "/actions", strings.NewReader(`{"type":"borrow","symbol":"BTC"}`))
	require.NoError(t, BindJSON(r, &a))
	assert.Equal(t, "borrow", a.Type)

	r = httptest.NewRequest("POST", "/actions", strings.NewReader(`{"type":"supply","symbol":"BTC"}`))
	assert.Error(t, BindJSON(r, &action{}))
}
