package hc

import (
	"net/http"
	"time"

	"moneymarket/core"
	"moneymarket/handler/render"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Handle health check, reports uptime and the current ledger block
func Handle(ver string, blocks core.IBlockService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Get("/", status(ver, blocks, time.Now()))
	return r
}

func status(ver string, blocks core.IBlockService, launched time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		block, err := blocks.CurrentBlock(r.Context())
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, render.H{
			"version": ver,
			"uptime":  time.Since(launched).Truncate(time.Second).String(),
			"block":   block,
		})
	}
}
