package rest

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/handler/request"

	"github.com/go-chi/chi"
)

func pricesHandler(prices core.IPriceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := prices.ListPrices(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, list)
	}
}

func priceHandler(prices core.IPriceReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		price, err := prices.FindPrice(r.Context(), strings.ToUpper(chi.URLParam(r, "symbol")))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, price)
	}
}

// submitPriceHandler signed price data, anyone may relay it
func submitPriceHandler(oraclez core.IOracleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data core.PriceData
		if err := request.BindJSON(r, &data); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := oraclez.Submit(r.Context(), &data); err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, data)
	}
}
