package session

import (
	"context"

	"moneymarket/core"

	"github.com/asaskevich/govalidator"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
	"github.com/golang-jwt/jwt"
	"golang.org/x/sync/singleflight"
)

// New new session
func New(users core.IUserStore, userz core.IUserService, capacity int, issuers []string) core.Session {
	var s core.Session = &session{
		users:   users,
		userz:   userz,
		issuers: issuers,
		sf:      &singleflight.Group{},
	}

	if capacity > 0 {
		s = newCacheSession(s, capacity)
	}

	return s
}

type session struct {
	users   core.IUserStore
	userz   core.IUserService
	sf      *singleflight.Group
	issuers []string
}

type claims struct {
	jwt.StandardClaims
	Scope string `json:"scp,omitempty"`
}

// parseClaims read the token claims, the signature is checked by mixin on login
func parseClaims(token string) (*claims, error) {
	var c claims
	if _, _, err := new(jwt.Parser).ParseUnverified(token, &c); err != nil {
		return nil, core.Errorf(core.ErrInvalidToken, "parse token: %v", err)
	}

	return &c, nil
}

func (s *session) Login(ctx context.Context, accessToken string) (*core.User, error) {
	user, err, _ := s.sf.Do(accessToken, func() (interface{}, error) {
		claim, err := parseClaims(accessToken)
		if err != nil {
			return nil, err
		}

		if claim.Scope != "FULL" && !govalidator.IsIn(claim.Issuer, s.issuers...) {
			return nil, core.Errorf(core.ErrInvalidToken, "invalid issuer %q", claim.Issuer)
		}

		if jti := claim.Id; govalidator.IsUUID(jti) {
			ctx = mixin.WithRequestID(ctx, jti)
		}

		user, err := s.userz.Login(ctx, accessToken)
		if err != nil {
			return nil, err
		}

		if err := s.users.Save(ctx, user); err != nil {
			logger.FromContext(ctx).WithError(err).Errorln("users.Save")
			return nil, err
		}

		return user, nil
	})

	if err != nil {
		return nil, err
	}

	return user.(*core.User), nil
}
