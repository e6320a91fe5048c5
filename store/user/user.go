package user

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type userStore struct {
	db *db.DB
}

// New new user store
func New(db *db.DB) core.IUserStore {
	return &userStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.User{})

		if err := tx.AutoMigrate(core.User{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Save create the user or refresh its profile
func (s *userStore) Save(ctx context.Context, user *core.User) error {
	return s.db.Update().Where("mixin_id = ?", user.MixinID).
		Assign(core.User{
			Name:        user.Name,
			Avatar:      user.Avatar,
			Lang:        user.Lang,
			AccessToken: user.AccessToken,
		}).
		FirstOrCreate(user).Error
}

func (s *userStore) Find(ctx context.Context, mixinID string) (*core.User, error) {
	var user core.User
	if err := s.db.View().Where("mixin_id = ?", mixinID).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.Errorf(core.ErrUserNotFound, "user %s", mixinID)
		}

		return nil, err
	}

	return &user, nil
}

func (s *userStore) List(ctx context.Context, fromID int64, limit int) ([]*core.User, error) {
	var users []*core.User
	if err := s.db.View().Where("id > ?", fromID).Order("id").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
