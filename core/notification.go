package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Notification inbound transfer received by the market
type Notification struct {
	ID         uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	SnapshotID string          `sql:"size:36;unique_index:notification_snapshot_idx" json:"snapshot_id,omitempty"`
	TraceID    string          `sql:"size:36" json:"trace_id,omitempty"`
	Sender     string          `sql:"size:64" json:"sender,omitempty"`
	AssetID    string          `sql:"size:36" json:"asset_id,omitempty"`
	Amount     decimal.Decimal `sql:"type:decimal(36,16)" json:"amount,omitempty"`
	Memo       string          `sql:"size:256" json:"memo,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// INotificationStore notification store interface
type INotificationStore interface {
	Save(ctx context.Context, notification *Notification) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Notification, error)
	// DeleteBefore remove notifications with id <= toID created before the given time
	DeleteBefore(ctx context.Context, toID uint64, before time.Time) (int64, error)
}
