package notification

import (
	"context"
	"time"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
)

type notificationStore struct {
	db *db.DB
}

// New new notification store instance
func New(db *db.DB) core.INotificationStore {
	return &notificationStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Notification{})
		if err := tx.AutoMigrate(core.Notification{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Save a snapshot is recorded once
func (s *notificationStore) Save(ctx context.Context, notification *core.Notification) error {
	return s.db.Update().Where("snapshot_id=?", notification.SnapshotID).FirstOrCreate(notification).Error
}

func (s *notificationStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Notification, error) {
	var notifications []*core.Notification
	if e := s.db.View().Where("id>?", fromID).Limit(limit).Order("id").Find(&notifications).Error; e != nil {
		return nil, e
	}

	return notifications, nil
}

func (s *notificationStore) DeleteBefore(ctx context.Context, toID uint64, before time.Time) (int64, error) {
	tx := s.db.Update().Where("id<=? AND created_at<?", toID, before).Delete(core.Notification{})
	return tx.RowsAffected, tx.Error
}
