package price

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type priceStore struct {
	db *db.DB
}

// New new price store
func New(db *db.DB) core.IPriceStore {
	return &priceStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Price{})

		if err := tx.AutoMigrate(core.Price{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *priceStore) Create(ctx context.Context, tx *db.DB, price *core.Price) error {
	return tx.Update().Where("symbol=?", price.Symbol).FirstOrCreate(price).Error
}

func (s *priceStore) Find(ctx context.Context, tx *db.DB, symbol string) (*core.Price, error) {
	var price core.Price
	if e := tx.View().Where("symbol=?", symbol).First(&price).Error; e != nil {
		if gorm.IsRecordNotFoundError(e) {
			return nil, core.Errorf(core.ErrPriceNotFound, "no price for %s", symbol)
		}

		return nil, e
	}

	return &price, nil
}

func (s *priceStore) Update(ctx context.Context, tx *db.DB, price *core.Price) error {
	version := price.Version
	price.Version++

	update := tx.Update().Model(price).Where("version=?", version).Updates(map[string]interface{}{
		"price":     price.Price,
		"block":     price.Block,
		"priced_at": price.PricedAt,
		"source":    price.Source,
		"version":   price.Version,
	})
	if update.Error != nil {
		return update.Error
	}

	if update.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *priceStore) All(ctx context.Context, tx *db.DB) ([]*core.Price, error) {
	var prices []*core.Price
	if e := tx.View().Order("symbol").Find(&prices).Error; e != nil {
		return nil, e
	}

	return prices, nil
}
