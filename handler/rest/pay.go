package rest

import (
	"fmt"
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/handler/request"

	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

type payRequest struct {
	Type       string          `json:"type" valid:"in(supply|repay|liquidate),required"`
	Symbol     string          `json:"symbol" valid:"required"`
	Amount     decimal.Decimal `json:"amount"`
	Borrower   string          `json:"borrower"`
	Collateral string          `json:"collateral"`
}

// PayMemo transfer memo routing a payment to the action
func PayMemo(typ, borrower, collateral string) (string, error) {
	switch typ {
	case "supply":
		return "supply", nil
	case "repay":
		if borrower == "" {
			return "", core.Errorf(core.ErrInvalidMemo, "repay needs a borrower")
		}
		return fmt.Sprintf("repay:%s", borrower), nil
	case "liquidate":
		if borrower == "" || collateral == "" {
			return "", core.Errorf(core.ErrInvalidMemo, "liquidate needs a borrower and a collateral")
		}
		return fmt.Sprintf("liquidate:%s:%s", borrower, strings.ToUpper(collateral)), nil
	default:
		return "", core.Errorf(core.ErrInvalidAction, "%s can not be paid", typ)
	}
}

// payRequestHandler mixin pay url for actions paying into the pool
func payRequestHandler(marketz core.IMarketService, walletz core.IWalletService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req payRequest
		if err := request.BindJSON(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		memo, err := PayMemo(req.Type, req.Borrower, req.Collateral)
		if err != nil {
			render.Error(w, err)
			return
		}

		reserve, err := findReserve(r, marketz, req.Symbol)
		if err != nil {
			render.Error(w, err)
			return
		}

		trace := uuid.New()
		url, err := walletz.PaySchemaURL(req.Amount, reserve.AssetID, trace, memo)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"trace_id": trace,
			"memo":     memo,
			"url":      url,
		})
	}
}
