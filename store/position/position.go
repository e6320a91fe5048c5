package position

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		if err := tx.AddIndex("position_owner_idx", "owner").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Create(ctx context.Context, tx *db.DB, position *core.Position) error {
	return tx.Update().Create(position).Error
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++

	update := tx.Update().Model(position).Where("version=?", version).Updates(map[string]interface{}{
		"supply_shares": position.SupplyShares,
		"borrow_shares": position.BorrowShares,
		"collateral":    position.Collateral,
		"version":       position.Version,
	})
	if err := update.Error; err != nil {
		return err
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

// Find returns an empty position if the owner never touched the reserve
func (s *positionStore) Find(ctx context.Context, tx *db.DB, owner, symbol string) (*core.Position, error) {
	var position core.Position
	if err := tx.View().Where("owner=? and symbol=?", owner, symbol).First(&position).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return core.NewPosition(owner, symbol), nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *positionStore) FindByOwner(ctx context.Context, tx *db.DB, owner string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := tx.View().Where("owner=?", owner).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}

func (s *positionStore) FindBySymbol(ctx context.Context, tx *db.DB, symbol string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := tx.View().Where("symbol=?", symbol).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}
