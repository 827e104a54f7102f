package auth

import (
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
)

// TokenTTL is the fixed validity of a session token.
const TokenTTL = 72 * time.Hour

type Session struct {
	ID        common.UUID
	UserID    common.UUID
	ExpiresAt time.Time
	RevokedAt *time.Time
	CreatedAt time.Time
}

func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

type Principal struct {
	UserID    common.UUID
	UserType  user.Role
	SessionID common.UUID
}
