package market

import (
	"context"
	"time"

	"moneymarket/core"
	"moneymarket/pkg/compound"
)

// overrides hypothetical reserves and positions replacing the stored ones
type overrides struct {
	reserves  []*core.Reserve
	positions []*core.Position
}

func (o overrides) reserve(symbol string) *core.Reserve {
	for _, r := range o.reserves {
		if r.Symbol == symbol {
			return r
		}
	}

	return nil
}

// valuate the owner's account at now, every reserve accrued in memory and
// every contributing position priced freshly
func valuate(ctx context.Context, ledger core.Ledger, global *core.Global, owner string, now time.Time, o overrides) (*core.Valuation, error) {
	stored, err := ledger.ListPositions(ctx, owner)
	if err != nil {
		return nil, err
	}

	positions := make(map[string]*core.Position, len(stored)+len(o.positions))
	symbols := make([]string, 0, len(stored)+len(o.positions))
	for _, p := range append(stored, o.positions...) {
		if p.Owner != owner {
			continue
		}

		if _, ok := positions[p.Symbol]; !ok {
			symbols = append(symbols, p.Symbol)
		}

		positions[p.Symbol] = p
	}

	holdings := make([]*compound.Holding, 0, len(symbols))
	for _, symbol := range symbols {
		position := positions[symbol]
		if !compound.Contributes(position) {
			continue
		}

		reserve := o.reserve(symbol)
		if reserve == nil {
			if reserve, err = loadReserve(ctx, ledger, symbol, now); err != nil {
				return nil, err
			}
		}

		price, err := freshPrice(ctx, ledger, global, symbol, now)
		if err != nil {
			return nil, err
		}

		holdings = append(holdings, &compound.Holding{
			Reserve:  reserve,
			Position: position,
			Price:    price,
		})
	}

	return compound.Valuate(holdings)
}
