package core

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

// ErrorCategory groups error codes by the kind of check that failed
type ErrorCategory int

const (
	ErrorCategoryUnknown ErrorCategory = iota
	ErrorCategoryAuthorization
	ErrorCategoryNotFound
	ErrorCategoryInvalidParameter
	ErrorCategoryStateViolation
	ErrorCategoryArithmetic
)

func (c ErrorCategory) String() string {
	switch c {
	case ErrorCategoryAuthorization:
		return "authorization"
	case ErrorCategoryNotFound:
		return "not-found"
	case ErrorCategoryInvalidParameter:
		return "invalid-parameter"
	case ErrorCategoryStateViolation:
		return "state-violation"
	case ErrorCategoryArithmetic:
		return "arithmetic"
	default:
		return "unknown"
	}
}

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000

	// ErrUnauthorized caller is not the required principal
	ErrUnauthorized ErrorCode = 100100
	// ErrInvalidToken session token rejected
	ErrInvalidToken ErrorCode = 100101

	// ErrReserveNotFound no reserve
	ErrReserveNotFound ErrorCode = 100200
	// ErrPositionNotFound no position
	ErrPositionNotFound ErrorCode = 100201
	// ErrPriceNotFound no price
	ErrPriceNotFound ErrorCode = 100202
	// ErrMarketNotInitialized global state missing
	ErrMarketNotInitialized ErrorCode = 100203
	// ErrTransferNotFound no transfer
	ErrTransferNotFound ErrorCode = 100204
	// ErrUserNotFound no user
	ErrUserNotFound ErrorCode = 100205

	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100300
	// ErrInvalidRiskParams invalid max ltv / threshold / bonus / reserve factor
	ErrInvalidRiskParams ErrorCode = 100301
	// ErrInvalidCurveParams invalid interest rate curve
	ErrInvalidCurveParams ErrorCode = 100302
	// ErrSymbolMismatch amounts of different assets mixed
	ErrSymbolMismatch ErrorCode = 100303
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100304
	// ErrInvalidGlobalParams invalid close factor, ttl or bonus
	ErrInvalidGlobalParams ErrorCode = 100305
	// ErrReserveExists reserve already exists
	ErrReserveExists ErrorCode = 100306
	// ErrInvalidMemo memo can not be routed
	ErrInvalidMemo ErrorCode = 100307
	// ErrSameSymbol debt and collateral symbols are equal
	ErrSameSymbol ErrorCode = 100308
	// ErrInvalidAction unknown action type
	ErrInvalidAction ErrorCode = 100309
	// ErrInvalidSignature price data signature does not verify
	ErrInvalidSignature ErrorCode = 100310
	// ErrInvalidSigner oracle signer key can not be parsed
	ErrInvalidSigner ErrorCode = 100311
	// ErrTraceConflict trace already applied to another action
	ErrTraceConflict ErrorCode = 100312

	// ErrMarketPaused market paused
	ErrMarketPaused ErrorCode = 100400
	// ErrReservePaused reserve paused
	ErrReservePaused ErrorCode = 100401
	// ErrInsufficientLiquidity insufficient liquidity
	ErrInsufficientLiquidity ErrorCode = 100402
	// ErrInsufficientCollateral insufficient collaterals
	ErrInsufficientCollateral ErrorCode = 100403
	// ErrWithdrawExceedsBalance withdraw more than supplied
	ErrWithdrawExceedsBalance ErrorCode = 100404
	// ErrLTVExceeded debt above max borrowable value
	ErrLTVExceeded ErrorCode = 100405
	// ErrBorrowNotAllowed borrow not allowed
	ErrBorrowNotAllowed ErrorCode = 100406
	// ErrNoDebt nothing to repay
	ErrNoDebt ErrorCode = 100407
	// ErrNotLiquidatable position is healthy
	ErrNotLiquidatable ErrorCode = 100408
	// ErrPriceStale price older than ttl
	ErrPriceStale ErrorCode = 100409
	// ErrPriceThrottled price updated twice in one block
	ErrPriceThrottled ErrorCode = 100410
	// ErrPriceDeltaExceeded price moved beyond the allowed delta
	ErrPriceDeltaExceeded ErrorCode = 100411
	// ErrCollateralWithoutSupply enable collateral on an empty position
	ErrCollateralWithoutSupply ErrorCode = 100412
	// ErrNoSupply nothing supplied
	ErrNoSupply ErrorCode = 100413
	// ErrAlreadyInitialized market initialized twice
	ErrAlreadyInitialized ErrorCode = 100414
	// ErrInsufficientReserve protocol reserve too small
	ErrInsufficientReserve ErrorCode = 100415
	// ErrPullNotSupported the transfer backend can not pull funds
	ErrPullNotSupported ErrorCode = 100416
	// ErrInsufficientFunds inbound transfer smaller than required
	ErrInsufficientFunds ErrorCode = 100417

	// ErrOverflow amount out of representable range
	ErrOverflow ErrorCode = 100500
	// ErrNegative negative amount where none is allowed
	ErrNegative ErrorCode = 100501
	// ErrDivisionByZero zero divisor
	ErrDivisionByZero ErrorCode = 100502
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Category the kind of check that produced the code
func (e ErrorCode) Category() ErrorCategory {
	c := ErrorCategory(int(e) / 100 % 10)
	if c > ErrorCategoryArithmetic {
		return ErrorCategoryUnknown
	}

	return c
}

// Error error code with a descriptive condition
type Error struct {
	Code ErrorCode `json:"code"`
	Msg  string    `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Code.Category(), e.Code, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Code
}

// Errorf wrap code with message
func Errorf(code ErrorCode, format string, args ...interface{}) error {
	return &Error{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf extract the error code of err, ErrUnknown if none
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}
