package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Position one owner's shares in one reserve
type Position struct {
	ID           uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Owner        string          `sql:"size:64;unique_index:position_owner_symbol_idx" json:"owner"`
	Symbol       string          `sql:"size:20;unique_index:position_owner_symbol_idx" json:"symbol"`
	SupplyShares decimal.Decimal `sql:"type:decimal(36,16)" json:"supply_shares"`
	BorrowShares decimal.Decimal `sql:"type:decimal(36,16)" json:"borrow_shares"`
	Collateral   bool            `json:"collateral"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewPosition empty position
func NewPosition(owner, symbol string) *Position {
	return &Position{
		Owner:        owner,
		Symbol:       symbol,
		SupplyShares: decimal.Zero,
		BorrowShares: decimal.Zero,
	}
}

// IsEmpty both shares are zero
func (p *Position) IsEmpty() bool {
	return p.SupplyShares.IsZero() && p.BorrowShares.IsZero()
}

// IPositionStore position store interface
type IPositionStore interface {
	Create(ctx context.Context, tx *db.DB, position *Position) error
	Update(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, tx *db.DB, owner, symbol string) (*Position, error)
	FindByOwner(ctx context.Context, tx *db.DB, owner string) ([]*Position, error)
	FindBySymbol(ctx context.Context, tx *db.DB, symbol string) ([]*Position, error)
}
