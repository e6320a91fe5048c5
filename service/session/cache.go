package session

import (
	"context"
	"time"

	"moneymarket/core"

	"github.com/bluele/gcache"
)

type cacheSession struct {
	core.Session
	tokens gcache.Cache
}

func newCacheSession(s core.Session, capacity int) *cacheSession {
	return &cacheSession{
		Session: s,
		tokens:  gcache.New(capacity).LRU().Build(),
	}
}

func (s *cacheSession) Login(ctx context.Context, accessToken string) (*core.User, error) {
	if v, err := s.tokens.Get(accessToken); err == nil {
		return v.(*core.User), nil
	}

	user, err := s.Session.Login(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	// cached until the token expires, at most one hour
	exp := time.Hour
	if claim, err := parseClaims(accessToken); err == nil && claim.ExpiresAt > 0 {
		if left := time.Until(time.Unix(claim.ExpiresAt, 0)); left < exp {
			exp = left
		}
	}

	if exp > 0 {
		_ = s.tokens.SetWithExpire(accessToken, user, exp)
	}

	return user, nil
}
