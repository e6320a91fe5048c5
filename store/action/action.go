package action

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		return db.Update().AutoMigrate(core.ActionLog{}).Error
	})
}

type actionStore struct {
	db *db.DB
}

// New applied action store, reads and writes go through the caller's tx
func New(db *db.DB) core.IActionStore {
	return &actionStore{db: db}
}

func (s *actionStore) Create(ctx context.Context, tx *db.DB, log *core.ActionLog) error {
	return tx.Update().Create(log).Error
}

func (s *actionStore) FindByTraceID(ctx context.Context, tx *db.DB, traceID string) (*core.ActionLog, error) {
	log := core.ActionLog{TraceID: traceID}
	if err := tx.View().Where("trace_id = ?", traceID).First(&log).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	return &log, nil
}
