package handler

import (
	"net/http"

	"moneymarket/core"
	"moneymarket/handler/auth"
	"moneymarket/handler/rest"
)

// Server http server
type Server struct {
	session   core.Session
	marketz   core.IMarketService
	oraclez   core.IOracleService
	walletz   core.IWalletService
	prices    core.IPriceReader
	transfers core.ITransferStore
}

// New new server
func New(
	session core.Session,
	marketz core.IMarketService,
	oraclez core.IOracleService,
	walletz core.IWalletService,
	prices core.IPriceReader,
	transfers core.ITransferStore,
) Server {
	return Server{
		session:   session,
		marketz:   marketz,
		oraclez:   oraclez,
		walletz:   walletz,
		prices:    prices,
		transfers: transfers,
	}
}

// HandleRestAPI rest api routes, requests carrying a bearer token are logged in
func (s Server) HandleRestAPI() http.Handler {
	h := rest.Handle(s.marketz, s.oraclez, s.walletz, s.prices, s.transfers)
	return auth.HandleAuthentication(s.session)(h)
}
