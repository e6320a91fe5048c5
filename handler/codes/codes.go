package codes

import (
	"net/http"

	"moneymarket/core"
)

// InvalidArguments malformed request
const InvalidArguments = 100001

// HTTPStatus status for err by its error category
func HTTPStatus(err error) int {
	code := core.CodeOf(err)
	switch code.Category() {
	case core.ErrorCategoryAuthorization:
		if code == core.ErrInvalidToken {
			return http.StatusUnauthorized
		}
		return http.StatusForbidden
	case core.ErrorCategoryNotFound:
		return http.StatusNotFound
	case core.ErrorCategoryInvalidParameter:
		return http.StatusBadRequest
	case core.ErrorCategoryStateViolation, core.ErrorCategoryArithmetic:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
