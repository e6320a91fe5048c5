package render

import (
	"encoding/json"
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/codes"

	"github.com/sirupsen/logrus"
)

// H shortcut for a json object
type H map[string]interface{}

type dataResponse struct {
	Data interface{} `json:"data"`
}

type errorResponse struct {
	Code     int    `json:"code"`
	Category string `json:"category,omitempty"`
	Msg      string `json:"msg"`
}

func write(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render: encode response")
	}
}

// JSON render v as {"data": v}
func JSON(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, dataResponse{Data: v})
}

// Error render err with the status of its category
func Error(w http.ResponseWriter, err error) {
	code := core.CodeOf(err)
	if code == core.ErrUnknown {
		write(w, http.StatusInternalServerError, errorResponse{Code: int(code), Msg: "internal error"})
		return
	}

	write(w, codes.HTTPStatus(err), errorResponse{
		Code:     int(code),
		Category: code.Category().String(),
		Msg:      err.Error(),
	})
}

// BadRequest malformed request
func BadRequest(w http.ResponseWriter, err error) {
	write(w, http.StatusBadRequest, errorResponse{Code: codes.InvalidArguments, Msg: err.Error()})
}

// NotFound unknown route
func NotFound(w http.ResponseWriter, r *http.Request) {
	write(w, http.StatusNotFound, errorResponse{Code: http.StatusNotFound, Msg: "not found"})
}
