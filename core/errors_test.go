package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategory(t *testing.T) {
	cases := map[ErrorCode]ErrorCategory{
		ErrUnauthorized:           ErrorCategoryAuthorization,
		ErrReserveNotFound:        ErrorCategoryNotFound,
		ErrPriceNotFound:          ErrorCategoryNotFound,
		ErrInvalidRiskParams:      ErrorCategoryInvalidParameter,
		ErrSymbolMismatch:         ErrorCategoryInvalidParameter,
		ErrPriceStale:             ErrorCategoryStateViolation,
		ErrInsufficientCollateral: ErrorCategoryStateViolation,
		ErrOverflow:               ErrorCategoryArithmetic,
		ErrUnknown:                ErrorCategoryUnknown,
	}

	for code, category := range cases {
		t.Run(code.String(), func(t *testing.T) {
			assert.Equal(t, category, code.Category())
		})
	}
}

func TestErrorf(t *testing.T) {
	err := Errorf(ErrReservePaused, "reserve %s paused", "BTC")
	assert.True(t, errors.Is(err, ErrReservePaused))
	assert.False(t, errors.Is(err, ErrMarketPaused))
	assert.Equal(t, ErrReservePaused, CodeOf(err))
	assert.Equal(t, ErrReservePaused, CodeOf(fmt.Errorf("wrapped: %w", err)))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("plain")))
	assert.Contains(t, err.Error(), "state-violation")
}
