package global

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type globalStore struct {
	db *db.DB
}

// New new global store
func New(db *db.DB) core.IGlobalStore {
	return &globalStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Global{})
		if err := tx.AutoMigrate(core.Global{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Save create the singleton on first save, update it with optimistic lock afterwards
func (s *globalStore) Save(ctx context.Context, tx *db.DB, global *core.Global) error {
	if global.Version == 0 {
		global.Version = 1
		return tx.Update().Create(global).Error
	}

	version := global.Version
	global.Version++

	update := tx.Update().Model(global).Where("version=?", version).Updates(map[string]interface{}{
		"admin":               global.Admin,
		"paused":              global.Paused,
		"price_ttl":           global.PriceTTL,
		"close_factor":        global.CloseFactor,
		"max_price_delta":     global.MaxPriceDelta,
		"emergency_mode":      global.EmergencyMode,
		"emergency_bonus":     global.EmergencyBonus,
		"max_emergency_bonus": global.MaxEmergencyBonus,
		"updaters":            global.Updaters,
		"version":             global.Version,
	})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *globalStore) Find(ctx context.Context, tx *db.DB) (*core.Global, error) {
	var global core.Global
	if err := tx.View().Where("id=?", core.GlobalID).First(&global).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.Errorf(core.ErrMarketNotInitialized, "market not initialized")
		}

		return nil, err
	}

	return &global, nil
}
