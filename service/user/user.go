package user

import (
	"context"

	"moneymarket/core"

	"github.com/fox-one/mixin-sdk-go"
)

type userService struct{}

// New new user service, tokens are checked against the mixin api
func New() core.IUserService {
	return &userService{}
}

// Login resolve the owner of a mixin access token
func (s *userService) Login(ctx context.Context, token string) (*core.User, error) {
	profile, err := mixin.UserMe(ctx, token)
	if err != nil {
		if mixin.IsErrorCodes(err, mixin.Unauthorized) {
			return nil, core.Errorf(core.ErrInvalidToken, "token rejected by mixin")
		}

		return nil, err
	}

	return &core.User{
		MixinID:     profile.UserID,
		Name:        profile.FullName,
		Avatar:      profile.AvatarURL,
		AccessToken: token,
	}, nil
}
