package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
		"0.1":         "0.1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestFloor(t *testing.T) {
	data := map[string]string{
		"0.10304": "0.1",
		"0.199":   "0.19",
		"1.0":     "1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Floor(Decimal(k), 2).String(), "should be floor")
		})
	}
}

func TestQuo(t *testing.T) {
	cases := []struct {
		a, b       string
		prec       int32
		floor, ceil string
	}{
		{"10", "3", 8, "3.33333333", "3.33333334"},
		{"9", "3", 8, "3", "3"},
		{"1", "7", 0, "0", "1"},
		{"0", "7", 4, "0", "0"},
		{"-1", "3", 2, "-0.34", "-0.33"},
	}

	for _, c := range cases {
		t.Run(c.a+"/"+c.b, func(t *testing.T) {
			a, b := Decimal(c.a), Decimal(c.b)
			assert.Equal(t, c.floor, QuoFloor(a, b, c.prec).String())
			assert.Equal(t, c.ceil, QuoCeil(a, b, c.prec).String())
		})
	}
}

func TestMulBps(t *testing.T) {
	assert.Equal(t, "700", MulBps(Decimal("1000"), 7000).String())
	assert.Equal(t, "0.00000001", MulBps(Decimal("0.0000001"), 1000).String())
	assert.Equal(t, "1.1", MulBps(Decimal("1"), 11000).String())
}
