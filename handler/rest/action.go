package rest

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/handler/request"

	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

var directActions = map[string]core.ActionType{
	"withdraw":       core.ActionTypeWithdraw,
	"borrow":         core.ActionTypeBorrow,
	"set_collateral": core.ActionTypeSetCollateral,
}

type actionRequest struct {
	TraceID string          `json:"trace_id" valid:"uuid"`
	Type    string          `json:"type" valid:"in(withdraw|borrow|set_collateral),required"`
	Symbol  string          `json:"symbol" valid:"required"`
	Amount  decimal.Decimal `json:"amount"`
	Enabled bool            `json:"enabled"`
}

// actionHandler actions paying out of the pool, run as the logged in user.
// Actions paying into the pool go through pay requests.
func actionHandler(marketz core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := request.UserFrom(r.Context())

		var req actionRequest
		if err := request.BindJSON(r, &req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if req.TraceID == "" {
			req.TraceID = uuid.New()
		}

		receipt, err := marketz.Handle(r.Context(), &core.Action{
			TraceID: req.TraceID,
			Type:    directActions[req.Type],
			Sender:  user.MixinID,
			Symbol:  strings.ToUpper(req.Symbol),
			Amount:  req.Amount,
			Enabled: req.Enabled,
		})
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, receipt)
	}
}
