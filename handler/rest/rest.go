package rest

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/auth"
	"moneymarket/handler/render"

	"github.com/go-chi/chi"
)

// Handle rest api routes
func Handle(
	marketz core.IMarketService,
	oraclez core.IOracleService,
	walletz core.IWalletService,
	prices core.IPriceReader,
	transfers core.ITransferStore,
) http.Handler {
	r := chi.NewRouter()
	r.NotFound(render.NotFound)

	r.Get("/global", globalHandler(marketz))
	r.Get("/reserves", reservesHandler(marketz))
	r.Get("/accounts/{owner}", accountHandler(marketz))

	r.Route("/prices", func(r chi.Router) {
		r.Get("/", pricesHandler(prices))
		r.Post("/", submitPriceHandler(oraclez))
		r.Get("/{symbol}", priceHandler(prices))
	})

	r.Post("/pay-requests", payRequestHandler(marketz, walletz))

	r.Group(func(r chi.Router) {
		r.Use(auth.UserRequired)
		r.Get("/me", meHandler(marketz))
		r.Get("/me/transfers", transfersHandler(transfers))
		r.Post("/actions", actionHandler(marketz))
	})

	return r
}
