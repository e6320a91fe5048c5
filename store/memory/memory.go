// Package memory keeps the market ledger in process memory.
//
// Units of work run one at a time against a copy of the state which replaces
// the state only when the unit succeeds.
package memory

import (
	"context"
	"sort"
	"sync"

	"moneymarket/core"
)

type state struct {
	global    *core.Global
	reserves  map[string]*core.Reserve
	positions map[string]*core.Position
	prices    map[string]*core.Price
	transfers []*core.Transfer
	actions   map[string]*core.ActionLog
	seq       uint64
}

func (s *state) clone() *state {
	c := &state{
		reserves:  make(map[string]*core.Reserve, len(s.reserves)),
		positions: make(map[string]*core.Position, len(s.positions)),
		prices:    make(map[string]*core.Price, len(s.prices)),
		transfers: append([]*core.Transfer(nil), s.transfers...),
		actions:   make(map[string]*core.ActionLog, len(s.actions)),
		seq:       s.seq,
	}

	for k, v := range s.actions {
		c.actions[k] = v
	}

	if s.global != nil {
		g := *s.global
		g.Updaters = append(g.Updaters[:0:0], s.global.Updaters...)
		c.global = &g
	}

	for k, v := range s.reserves {
		r := *v
		c.reserves[k] = &r
	}

	for k, v := range s.positions {
		p := *v
		c.positions[k] = &p
	}

	for k, v := range s.prices {
		p := *v
		c.prices[k] = &p
	}

	return c
}

func (s *state) nextID() uint64 {
	s.seq++
	return s.seq
}

// Store in memory ledger store
type Store struct {
	mu    sync.Mutex
	state *state
}

// New empty store
func New() *Store {
	return &Store{
		state: &state{
			reserves:  map[string]*core.Reserve{},
			positions: map[string]*core.Position{},
			prices:    map[string]*core.Price{},
			actions:   map[string]*core.ActionLog{},
		},
	}
}

func (s *Store) Tx(ctx context.Context, fn func(ctx context.Context, ledger core.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := fn(ctx, &ledger{state: next}); err != nil {
		return err
	}

	s.state = next
	return nil
}

func (s *Store) View(ctx context.Context, fn func(ctx context.Context, ledger core.Ledger) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(ctx, &ledger{state: s.state.clone()})
}

// Transfers every committed transfer in order
func (s *Store) Transfers() []*core.Transfer {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]*core.Transfer(nil), s.state.transfers...)
}

type ledger struct {
	state *state
}

func positionKey(owner, symbol string) string {
	return owner + ":" + symbol
}

func (l *ledger) Global(ctx context.Context) (*core.Global, error) {
	if l.state.global == nil {
		return nil, core.Errorf(core.ErrMarketNotInitialized, "market not initialized")
	}

	return l.state.global, nil
}

func (l *ledger) SaveGlobal(ctx context.Context, global *core.Global) error {
	global.Version++
	l.state.global = global
	return nil
}

func (l *ledger) FindReserve(ctx context.Context, symbol string) (*core.Reserve, error) {
	r, ok := l.state.reserves[symbol]
	if !ok {
		return nil, core.Errorf(core.ErrReserveNotFound, "reserve %s not found", symbol)
	}

	return r, nil
}

func (l *ledger) FindReserveByAsset(ctx context.Context, assetID string) (*core.Reserve, error) {
	for _, r := range l.state.reserves {
		if r.AssetID == assetID {
			return r, nil
		}
	}

	return nil, core.Errorf(core.ErrReserveNotFound, "no reserve for asset %s", assetID)
}

func (l *ledger) ListReserves(ctx context.Context) ([]*core.Reserve, error) {
	reserves := make([]*core.Reserve, 0, len(l.state.reserves))
	for _, r := range l.state.reserves {
		reserves = append(reserves, r)
	}

	sort.Slice(reserves, func(i, j int) bool {
		return reserves[i].ID < reserves[j].ID
	})

	return reserves, nil
}

func (l *ledger) SaveReserve(ctx context.Context, reserve *core.Reserve) error {
	if reserve.ID == 0 {
		reserve.ID = l.state.nextID()
	}

	reserve.Version++
	l.state.reserves[reserve.Symbol] = reserve
	return nil
}

func (l *ledger) FindPosition(ctx context.Context, owner, symbol string) (*core.Position, error) {
	if p, ok := l.state.positions[positionKey(owner, symbol)]; ok {
		return p, nil
	}

	return core.NewPosition(owner, symbol), nil
}

func (l *ledger) ListPositions(ctx context.Context, owner string) ([]*core.Position, error) {
	var positions []*core.Position
	for _, p := range l.state.positions {
		if p.Owner == owner {
			positions = append(positions, p)
		}
	}

	sort.Slice(positions, func(i, j int) bool {
		return positions[i].ID < positions[j].ID
	})

	return positions, nil
}

func (l *ledger) SavePosition(ctx context.Context, position *core.Position) error {
	if position.ID == 0 {
		position.ID = l.state.nextID()
	}

	position.Version++
	l.state.positions[positionKey(position.Owner, position.Symbol)] = position
	return nil
}

func (l *ledger) FindPrice(ctx context.Context, symbol string) (*core.Price, error) {
	p, ok := l.state.prices[symbol]
	if !ok {
		return nil, core.Errorf(core.ErrPriceNotFound, "no price for %s", symbol)
	}

	return p, nil
}

func (l *ledger) ListPrices(ctx context.Context) ([]*core.Price, error) {
	prices := make([]*core.Price, 0, len(l.state.prices))
	for _, p := range l.state.prices {
		prices = append(prices, p)
	}

	sort.Slice(prices, func(i, j int) bool {
		return prices[i].Symbol < prices[j].Symbol
	})

	return prices, nil
}

func (l *ledger) SavePrice(ctx context.Context, price *core.Price) error {
	if price.ID == 0 {
		price.ID = l.state.nextID()
	}

	price.Version++
	l.state.prices[price.Symbol] = price
	return nil
}

func (l *ledger) TransferIn(ctx context.Context, transfer *core.Transfer) error {
	return l.record(transfer, core.TransferDirectionIn)
}

func (l *ledger) TransferOut(ctx context.Context, transfer *core.Transfer) error {
	return l.record(transfer, core.TransferDirectionOut)
}

func (l *ledger) Receive(ctx context.Context, transfer *core.Transfer) error {
	return l.record(transfer, core.TransferDirectionIn)
}

// record a trace id is recorded once
func (l *ledger) record(transfer *core.Transfer, direction core.TransferDirection) error {
	for _, t := range l.state.transfers {
		if transfer.TraceID != "" && t.TraceID == transfer.TraceID {
			return nil
		}
	}

	t := *transfer
	t.ID = l.state.nextID()
	t.Direction = direction
	t.Status = core.TransferStatusPending
	if direction == core.TransferDirectionIn {
		t.Status = core.TransferStatusDone
	}

	l.state.transfers = append(l.state.transfers, &t)
	return nil
}

func (l *ledger) FindAction(ctx context.Context, traceID string) (*core.ActionLog, error) {
	if log, ok := l.state.actions[traceID]; ok {
		return log, nil
	}

	return &core.ActionLog{TraceID: traceID}, nil
}

func (l *ledger) SaveAction(ctx context.Context, log *core.ActionLog) error {
	if _, ok := l.state.actions[log.TraceID]; ok {
		return core.Errorf(core.ErrTraceConflict, "trace %s already applied", log.TraceID)
	}

	log.ID = l.state.nextID()
	l.state.actions[log.TraceID] = log
	return nil
}
