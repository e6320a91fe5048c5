package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// ActionType user action type
type ActionType int

const (
	_ ActionType = iota
	ActionTypeSupply
	ActionTypeWithdraw
	ActionTypeBorrow
	ActionTypeRepay
	ActionTypeSetCollateral
	ActionTypeLiquidate
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeSupply:
		return "supply"
	case ActionTypeWithdraw:
		return "withdraw"
	case ActionTypeBorrow:
		return "borrow"
	case ActionTypeRepay:
		return "repay"
	case ActionTypeSetCollateral:
		return "set_collateral"
	case ActionTypeLiquidate:
		return "liquidate"
	default:
		return "unknown"
	}
}

// Action a user request against the market
type Action struct {
	TraceID string     `json:"trace_id"`
	Type    ActionType `json:"type"`
	// the principal the host authorized the action for
	Sender string          `json:"sender"`
	Symbol string          `json:"symbol"`
	Amount decimal.Decimal `json:"amount"`
	// repay on behalf of / liquidation target
	Borrower string `json:"borrower,omitempty"`
	// liquidation seize symbol
	Collateral string `json:"collateral,omitempty"`
	// set collateral flag
	Enabled bool `json:"enabled,omitempty"`
	// inbound transfer paying for the action, pulled from Sender otherwise
	Funds     *Notification `json:"-"`
	CreatedAt time.Time     `json:"created_at"`
}

// Receipt the outcome of an action
type Receipt struct {
	TraceID string          `json:"trace_id"`
	Type    ActionType      `json:"type"`
	Symbol  string          `json:"symbol"`
	Amount  decimal.Decimal `json:"amount"`
	Shares  decimal.Decimal `json:"shares"`
	// liquidation only
	Collateral   string          `json:"collateral,omitempty"`
	Seized       decimal.Decimal `json:"seized"`
	SeizedShares decimal.Decimal `json:"seized_shares"`
	// unused part of Action.Funds sent back
	Refund decimal.Decimal `json:"refund"`
}

// ActionLog an applied action, a trace is applied once
type ActionLog struct {
	ID        uint64         `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string         `sql:"size:36;unique_index:action_trace_idx" json:"trace_id"`
	Type      ActionType     `json:"type"`
	Sender    string         `sql:"size:64" json:"sender"`
	Receipt   types.JSONText `sql:"type:TEXT" json:"receipt"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IActionStore applied actions
type IActionStore interface {
	Create(ctx context.Context, tx *db.DB, log *ActionLog) error
	// FindByTraceID a log with zero id when the trace was never applied
	FindByTraceID(ctx context.Context, tx *db.DB, traceID string) (*ActionLog, error)
}
