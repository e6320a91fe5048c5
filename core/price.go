package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// Price price info, one per symbol
type Price struct {
	ID     uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Symbol string          `sql:"size:20;unique_index:price_symbol_idx" json:"symbol,omitempty"`
	Price  decimal.Decimal `sql:"type:decimal(36,16)" json:"price,omitempty"`
	// block the price was last set in
	Block    int64     `json:"block,omitempty"`
	PricedAt time.Time `json:"priced_at,omitempty"`
	// raw tickers or signed price data the price was taken from
	Source    types.JSONText `sql:"type:varchar(1024)" json:"source,omitempty"`
	Version   int64          `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	Symbol   string          `json:"symbol,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Create(ctx context.Context, tx *db.DB, price *Price) error
	Update(ctx context.Context, tx *db.DB, price *Price) error
	Find(ctx context.Context, tx *db.DB, symbol string) (*Price, error)
	All(ctx context.Context, tx *db.DB) ([]*Price, error)
}

// IPriceReader committed prices for the read apis, may lag behind the ledger
type IPriceReader interface {
	FindPrice(ctx context.Context, symbol string) (*Price, error)
	ListPrices(ctx context.Context) ([]*Price, error)
}
