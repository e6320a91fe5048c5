package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TransferDirection in: pool receives, out: pool pays
type TransferDirection int8

const (
	_ TransferDirection = iota
	TransferDirectionIn
	TransferDirectionOut
)

func (d TransferDirection) String() string {
	switch d {
	case TransferDirectionIn:
		return "in"
	case TransferDirectionOut:
		return "out"
	default:
		return "unknown"
	}
}

// TransferStatus transfer status
type TransferStatus int8

const (
	TransferStatusPending TransferStatus = iota
	TransferStatusDone
)

// Transfer token movement requested by the market
type Transfer struct {
	ID        uint64            `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitempty"`
	UpdatedAt time.Time         `json:"updated_at,omitempty"`
	TraceID   string            `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id,omitempty"`
	Direction TransferDirection `json:"direction,omitempty"`
	Status    TransferStatus    `sql:"index:transfer_status_idx" json:"status"`
	Opponent  string            `sql:"size:64;index:transfer_opponent_idx" json:"opponent,omitempty"`
	Symbol    string            `sql:"size:20" json:"symbol,omitempty"`
	AssetID   string            `sql:"size:36" json:"asset_id,omitempty"`
	Amount    decimal.Decimal   `sql:"type:decimal(36,16)" json:"amount,omitempty"`
	Memo      string            `sql:"size:140" json:"memo,omitempty"`
}

// Transferer moves tokens between accounts and the pool
type Transferer interface {
	// TransferIn pull transfer.Amount from transfer.Opponent into the pool
	TransferIn(ctx context.Context, transfer *Transfer) error
	// TransferOut push transfer.Amount from the pool to transfer.Opponent
	TransferOut(ctx context.Context, transfer *Transfer) error
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	ListPending(ctx context.Context, direction TransferDirection, limit int) ([]*Transfer, error)
	ListByOpponent(ctx context.Context, opponent string, fromID uint64, limit int) ([]*Transfer, error)
	MarkDone(ctx context.Context, transfer *Transfer) error
}
