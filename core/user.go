package core

import (
	"context"
	"time"
)

// User mixin user logged into the rest api
type User struct {
	ID          int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
	MixinID     string    `sql:"size:36;unique_index:idx_users_mixin_id" json:"mixin_id,omitempty"`
	Lang        string    `sql:"size:36" json:"lang,omitempty"`
	Name        string    `sql:"size:64" json:"name,omitempty"`
	Avatar      string    `sql:"size:255" json:"avatar,omitempty"`
	AccessToken string    `sql:"size:512" json:"-"`
}

// IUserStore user store interface
type IUserStore interface {
	Save(ctx context.Context, user *User) error
	Find(ctx context.Context, mixinID string) (*User, error)
	List(ctx context.Context, fromID int64, limit int) ([]*User, error)
}

// IUserService user service interface
type IUserService interface {
	Login(ctx context.Context, token string) (*User, error)
}

// Session resolves the user behind a bearer token
type Session interface {
	Login(ctx context.Context, accessToken string) (*User, error)
}
