package transfer

import (
	"context"
	"errors"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.ITransferStore {
	return &transferStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transfer{})
		if err := tx.AutoMigrate(core.Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Create the same trace id is saved once
func (s *transferStore) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return tx.Update().Where("trace_id=?", transfer.TraceID).FirstOrCreate(transfer).Error
}

func (s *transferStore) ListPending(ctx context.Context, direction core.TransferDirection, limit int) ([]*core.Transfer, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var transfers []*core.Transfer
	if e := s.db.View().Where("direction=? and status=?", direction, core.TransferStatusPending).Limit(limit).Order("id").Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}

func (s *transferStore) ListByOpponent(ctx context.Context, opponent string, fromID uint64, limit int) ([]*core.Transfer, error) {
	if limit <= 0 {
		return nil, errors.New("invalid limit")
	}

	var transfers []*core.Transfer
	if e := s.db.View().Where("opponent=? and id>?", opponent, fromID).Limit(limit).Order("id").Find(&transfers).Error; e != nil {
		return nil, e
	}

	return transfers, nil
}

func (s *transferStore) MarkDone(ctx context.Context, transfer *core.Transfer) error {
	transfer.Status = core.TransferStatusDone
	return s.db.Update().Model(transfer).Update("status", core.TransferStatusDone).Error
}
