package auth

import (
	"context"
	"time"

	"jobboard/internal/common"
)

type SessionRepository interface {
	Create(ctx context.Context, session Session) error
	GetByID(ctx context.Context, id common.UUID) (*Session, error)
	Revoke(ctx context.Context, id common.UUID, revokedAt time.Time) error
	// DeleteInactive removes sessions that expired or were revoked before the cutoff.
	DeleteInactive(ctx context.Context, before time.Time) (int64, error)
}
