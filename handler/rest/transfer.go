package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/handler/request"
)

func transfersHandler(transfers core.ITransferStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := request.UserFrom(r.Context())

		query := struct {
			From  uint64 `json:"from"`
			Limit int    `json:"limit" valid:"range(1|500)"`
		}{Limit: 100}

		if err := request.BindQuery(r, &query); err != nil {
			render.BadRequest(w, err)
			return
		}

		list, err := transfers.ListByOpponent(r.Context(), user.MixinID, query.From, query.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}
