package compound

import (
	"moneymarket/core"
)

const (
	// RateScale basis points in one
	RateScale int64 = 10000
	// SecondsPerYear seconds per year
	SecondsPerYear int64 = 31536000
	// ValuePrecision decimal places kept when a division yields a value
	ValuePrecision int32 = 16
	// RatePrecision decimal places of a rate in bps
	RatePrecision int32 = 16
)

// Require return code with msg if condition is false
func Require(condition bool, code core.ErrorCode, msg string, args ...interface{}) error {
	if condition {
		return nil
	}

	return core.Errorf(code, msg, args...)
}
