package core

import (
	"context"
)

// Ledger the records one operation reads and writes. Writes and transfers
// become visible together when the enclosing transaction commits.
type Ledger interface {
	Transferer
	// Receive record a transfer the pool already holds
	Receive(ctx context.Context, transfer *Transfer) error

	// FindAction the applied action of trace, zero id if none
	FindAction(ctx context.Context, traceID string) (*ActionLog, error)
	SaveAction(ctx context.Context, log *ActionLog) error

	Global(ctx context.Context) (*Global, error)
	SaveGlobal(ctx context.Context, global *Global) error

	FindReserve(ctx context.Context, symbol string) (*Reserve, error)
	FindReserveByAsset(ctx context.Context, assetID string) (*Reserve, error)
	ListReserves(ctx context.Context) ([]*Reserve, error)
	SaveReserve(ctx context.Context, reserve *Reserve) error

	FindPosition(ctx context.Context, owner, symbol string) (*Position, error)
	ListPositions(ctx context.Context, owner string) ([]*Position, error)
	SavePosition(ctx context.Context, position *Position) error

	FindPrice(ctx context.Context, symbol string) (*Price, error)
	ListPrices(ctx context.Context) ([]*Price, error)
	SavePrice(ctx context.Context, price *Price) error
}

// ILedgerStore runs operations against the persisted market state
type ILedgerStore interface {
	// Tx runs fn in one atomic unit of work, nothing is kept if fn fails
	Tx(ctx context.Context, fn func(ctx context.Context, ledger Ledger) error) error
	// View runs fn read only
	View(ctx context.Context, fn func(ctx context.Context, ledger Ledger) error) error
}
