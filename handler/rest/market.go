package rest

import (
	"net/http"
	"strings"

	"moneymarket/core"
	"moneymarket/handler/render"
	"moneymarket/handler/request"

	"github.com/go-chi/chi"
)

func globalHandler(marketz core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		global, err := marketz.Global(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, global)
	}
}

func reservesHandler(marketz core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reserves, err := marketz.Reserves(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, reserves)
	}
}

func accountHandler(marketz core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := marketz.Account(r.Context(), chi.URLParam(r, "owner"))
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, account)
	}
}

func meHandler(marketz core.IMarketService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, _ := request.UserFrom(r.Context())

		account, err := marketz.Account(r.Context(), user.MixinID)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"user":    user,
			"account": account,
		})
	}
}

func findReserve(r *http.Request, marketz core.IMarketService, symbol string) (*core.ReserveView, error) {
	reserves, err := marketz.Reserves(r.Context())
	if err != nil {
		return nil, err
	}

	for _, reserve := range reserves {
		if strings.EqualFold(reserve.Symbol, symbol) {
			return reserve, nil
		}
	}

	return nil, core.Errorf(core.ErrReserveNotFound, "reserve %s not found", symbol)
}
