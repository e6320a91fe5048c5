package ledger

import (
	"context"
	"errors"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

// ErrReadOnly write through a View ledger
var ErrReadOnly = errors.New("ledger is read only")

type ledgerStore struct {
	db        *db.DB
	globals   core.IGlobalStore
	reserves  core.IReserveStore
	positions core.IPositionStore
	prices    core.IPriceStore
	transfers core.ITransferStore
	actions   core.IActionStore
}

// New ledger store running market operations in database transactions
func New(
	db *db.DB,
	globals core.IGlobalStore,
	reserves core.IReserveStore,
	positions core.IPositionStore,
	prices core.IPriceStore,
	transfers core.ITransferStore,
	actions core.IActionStore,
) core.ILedgerStore {
	return &ledgerStore{
		db:        db,
		globals:   globals,
		reserves:  reserves,
		positions: positions,
		prices:    prices,
		transfers: transfers,
		actions:   actions,
	}
}

func (s *ledgerStore) Tx(ctx context.Context, fn func(ctx context.Context, ledger core.Ledger) error) error {
	return s.db.Tx(func(tx *db.DB) error {
		return fn(ctx, s.open(tx, false))
	})
}

func (s *ledgerStore) View(ctx context.Context, fn func(ctx context.Context, ledger core.Ledger) error) error {
	return fn(ctx, s.open(s.db, true))
}

func (s *ledgerStore) open(tx *db.DB, readonly bool) *ledger {
	return &ledger{
		ledgerStore:   s,
		tx:            tx,
		readonly:      readonly,
		reserveCache:  map[string]*core.Reserve{},
		positionCache: map[string]*core.Position{},
	}
}

// ledger one unit of work, reserves and positions are loaded once
type ledger struct {
	*ledgerStore
	tx            *db.DB
	readonly      bool
	reserveCache  map[string]*core.Reserve
	positionCache map[string]*core.Position
}

func positionKey(owner, symbol string) string {
	return owner + ":" + symbol
}

func (l *ledger) writable() error {
	if l.readonly {
		return ErrReadOnly
	}

	return nil
}

func (l *ledger) Global(ctx context.Context) (*core.Global, error) {
	return l.globals.Find(ctx, l.tx)
}

func (l *ledger) SaveGlobal(ctx context.Context, global *core.Global) error {
	if err := l.writable(); err != nil {
		return err
	}

	return l.globals.Save(ctx, l.tx, global)
}

func (l *ledger) FindReserve(ctx context.Context, symbol string) (*core.Reserve, error) {
	if r, ok := l.reserveCache[symbol]; ok {
		return r, nil
	}

	r, err := l.reserves.Find(ctx, l.tx, symbol)
	if err != nil {
		return nil, err
	}

	l.reserveCache[symbol] = r
	return r, nil
}

func (l *ledger) FindReserveByAsset(ctx context.Context, assetID string) (*core.Reserve, error) {
	for _, r := range l.reserveCache {
		if r.AssetID == assetID {
			return r, nil
		}
	}

	r, err := l.reserves.FindByAsset(ctx, l.tx, assetID)
	if err != nil {
		return nil, err
	}

	l.reserveCache[r.Symbol] = r
	return r, nil
}

func (l *ledger) ListReserves(ctx context.Context) ([]*core.Reserve, error) {
	reserves, err := l.reserves.All(ctx, l.tx)
	if err != nil {
		return nil, err
	}

	for idx, r := range reserves {
		if cached, ok := l.reserveCache[r.Symbol]; ok {
			reserves[idx] = cached
			continue
		}

		l.reserveCache[r.Symbol] = r
	}

	return reserves, nil
}

func (l *ledger) SaveReserve(ctx context.Context, reserve *core.Reserve) error {
	if err := l.writable(); err != nil {
		return err
	}

	save := l.reserves.Update
	if reserve.ID == 0 {
		save = l.reserves.Create
	}

	if err := save(ctx, l.tx, reserve); err != nil {
		return err
	}

	l.reserveCache[reserve.Symbol] = reserve
	return nil
}

func (l *ledger) FindPosition(ctx context.Context, owner, symbol string) (*core.Position, error) {
	key := positionKey(owner, symbol)
	if p, ok := l.positionCache[key]; ok {
		return p, nil
	}

	p, err := l.positions.Find(ctx, l.tx, owner, symbol)
	if err != nil {
		return nil, err
	}

	l.positionCache[key] = p
	return p, nil
}

func (l *ledger) ListPositions(ctx context.Context, owner string) ([]*core.Position, error) {
	positions, err := l.positions.FindByOwner(ctx, l.tx, owner)
	if err != nil {
		return nil, err
	}

	for idx, p := range positions {
		key := positionKey(p.Owner, p.Symbol)
		if cached, ok := l.positionCache[key]; ok {
			positions[idx] = cached
			continue
		}

		l.positionCache[key] = p
	}

	return positions, nil
}

func (l *ledger) SavePosition(ctx context.Context, position *core.Position) error {
	if err := l.writable(); err != nil {
		return err
	}

	key := positionKey(position.Owner, position.Symbol)
	if position.ID == 0 {
		// nothing to keep for a position that was never funded
		if position.IsEmpty() && !position.Collateral {
			l.positionCache[key] = position
			return nil
		}

		if err := l.positions.Create(ctx, l.tx, position); err != nil {
			return err
		}
	} else if err := l.positions.Update(ctx, l.tx, position); err != nil {
		return err
	}

	l.positionCache[key] = position
	return nil
}

func (l *ledger) FindPrice(ctx context.Context, symbol string) (*core.Price, error) {
	return l.prices.Find(ctx, l.tx, symbol)
}

func (l *ledger) ListPrices(ctx context.Context) ([]*core.Price, error) {
	return l.prices.All(ctx, l.tx)
}

func (l *ledger) SavePrice(ctx context.Context, price *core.Price) error {
	if err := l.writable(); err != nil {
		return err
	}

	if price.ID == 0 {
		return l.prices.Create(ctx, l.tx, price)
	}

	return l.prices.Update(ctx, l.tx, price)
}

// TransferIn the pool cannot pull from a mixin user, inbound funds arrive as
// notifications and are spent through an escrow
func (l *ledger) TransferIn(ctx context.Context, transfer *core.Transfer) error {
	return core.Errorf(core.ErrPullNotSupported, "cannot pull %s %s from %s", transfer.Amount, transfer.Symbol, transfer.Opponent)
}

// TransferOut queue the transfer, the cashier sends it after commit
func (l *ledger) TransferOut(ctx context.Context, transfer *core.Transfer) error {
	if err := l.writable(); err != nil {
		return err
	}

	transfer.Direction = core.TransferDirectionOut
	transfer.Status = core.TransferStatusPending
	return l.transfers.Create(ctx, l.tx, transfer)
}

// Receive keep the history of funds spent from an escrow, nothing to send
func (l *ledger) Receive(ctx context.Context, transfer *core.Transfer) error {
	if err := l.writable(); err != nil {
		return err
	}

	transfer.Direction = core.TransferDirectionIn
	transfer.Status = core.TransferStatusDone
	return l.transfers.Create(ctx, l.tx, transfer)
}

func (l *ledger) FindAction(ctx context.Context, traceID string) (*core.ActionLog, error) {
	return l.actions.FindByTraceID(ctx, l.tx, traceID)
}

func (l *ledger) SaveAction(ctx context.Context, log *core.ActionLog) error {
	if err := l.writable(); err != nil {
		return err
	}

	return l.actions.Create(ctx, l.tx, log)
}
