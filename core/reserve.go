package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ReserveParams risk and interest rate curve parameters, all in bps
type ReserveParams struct {
	// 最大借款价值比例
	MaxLTV int64 `json:"max_ltv"`
	// 清算阈值, >= MaxLTV
	LiquidationThreshold int64 `json:"liquidation_threshold"`
	// 清算奖励 [10000, 20000]
	LiquidationBonus int64 `json:"liquidation_bonus"`
	// 平台保留金率 <= 5000
	ReserveFactor int64 `json:"reserve_factor"`
	// kink
	OptimalUtilization int64 `json:"optimal_utilization"`
	BaseRate           int64 `json:"base_rate"`
	OptimalRate        int64 `json:"optimal_rate"`
	MaxRate            int64 `json:"max_rate"`
}

// Reserve pooled state of one asset
type Reserve struct {
	ID        uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol    string `sql:"size:20;unique_index:reserve_symbol_idx" json:"symbol"`
	AssetID   string `sql:"size:36;index:reserve_asset_idx" json:"asset_id"`
	Precision int32  `json:"precision"`
	ReserveParams
	Paused bool `json:"paused"`
	// 存款总额（含已借出）
	TotalLiquidity    decimal.Decimal `sql:"type:decimal(36,16)" json:"total_liquidity"`
	TotalDebt         decimal.Decimal `sql:"type:decimal(36,16)" json:"total_debt"`
	TotalSupplyShares decimal.Decimal `sql:"type:decimal(36,16)" json:"total_supply_shares"`
	TotalBorrowShares decimal.Decimal `sql:"type:decimal(36,16)" json:"total_borrow_shares"`
	// 平台保留金
	ProtocolReserve decimal.Decimal `sql:"type:decimal(36,16)" json:"protocol_reserve"`
	AccruedAt       time.Time       `json:"accrued_at"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Available liquidity not lent out
func (r *Reserve) Available() decimal.Decimal {
	if v := r.TotalLiquidity.Sub(r.TotalDebt); v.IsPositive() {
		return v
	}

	return decimal.Zero
}

// Cash tokens held by the pool, available liquidity plus the protocol reserve
func (r *Reserve) Cash() decimal.Decimal {
	if v := r.TotalLiquidity.Sub(r.TotalDebt).Add(r.ProtocolReserve); v.IsPositive() {
		return v
	}

	return decimal.Zero
}

// IReserveStore reserve store interface
type IReserveStore interface {
	Create(ctx context.Context, tx *db.DB, reserve *Reserve) error
	Update(ctx context.Context, tx *db.DB, reserve *Reserve) error
	Find(ctx context.Context, tx *db.DB, symbol string) (*Reserve, error)
	FindByAsset(ctx context.Context, tx *db.DB, assetID string) (*Reserve, error)
	All(ctx context.Context, tx *db.DB) ([]*Reserve, error)
}
