package reserve

import (
	"context"
	"errors"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type reserveStore struct {
	db *db.DB
}

// New new reserve store
func New(db *db.DB) core.IReserveStore {
	return &reserveStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Reserve{})
		if err := tx.AutoMigrate(core.Reserve{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *reserveStore) Create(ctx context.Context, tx *db.DB, reserve *core.Reserve) error {
	return tx.Update().Create(reserve).Error
}

func (s *reserveStore) Update(ctx context.Context, tx *db.DB, reserve *core.Reserve) error {
	version := reserve.Version
	reserve.Version++

	update := tx.Update().Model(reserve).Where("version=?", version).Updates(toUpdateParams(reserve))
	if err := update.Error; err != nil {
		return err
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func toUpdateParams(r *core.Reserve) map[string]interface{} {
	return map[string]interface{}{
		"max_ltv":               r.MaxLTV,
		"liquidation_threshold": r.LiquidationThreshold,
		"liquidation_bonus":     r.LiquidationBonus,
		"reserve_factor":        r.ReserveFactor,
		"optimal_utilization":   r.OptimalUtilization,
		"base_rate":             r.BaseRate,
		"optimal_rate":          r.OptimalRate,
		"max_rate":              r.MaxRate,
		"paused":                r.Paused,
		"total_liquidity":       r.TotalLiquidity,
		"total_debt":            r.TotalDebt,
		"total_supply_shares":   r.TotalSupplyShares,
		"total_borrow_shares":   r.TotalBorrowShares,
		"protocol_reserve":      r.ProtocolReserve,
		"accrued_at":            r.AccruedAt,
		"version":               r.Version,
	}
}

func (s *reserveStore) Find(ctx context.Context, tx *db.DB, symbol string) (*core.Reserve, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}

	var reserve core.Reserve
	if err := tx.View().Where("symbol=?", symbol).First(&reserve).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.Errorf(core.ErrReserveNotFound, "reserve %s not found", symbol)
		}

		return nil, err
	}

	return &reserve, nil
}

func (s *reserveStore) FindByAsset(ctx context.Context, tx *db.DB, assetID string) (*core.Reserve, error) {
	var reserve core.Reserve
	if err := tx.View().Where("asset_id=?", assetID).First(&reserve).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.Errorf(core.ErrReserveNotFound, "no reserve for asset %s", assetID)
		}

		return nil, err
	}

	return &reserve, nil
}

func (s *reserveStore) All(ctx context.Context, tx *db.DB) ([]*core.Reserve, error) {
	var reserves []*core.Reserve
	if err := tx.View().Order("id").Find(&reserves).Error; err != nil {
		return nil, err
	}

	return reserves, nil
}
