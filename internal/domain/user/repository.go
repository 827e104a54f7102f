package user

import (
	"context"
	"time"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, account User) (*User, error)
	GetByID(ctx context.Context, id common.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByUsername(ctx context.Context, username string, exclude common.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string, exclude common.UUID) (bool, error)
	Update(ctx context.Context, account User) (*User, error)
	Delete(ctx context.Context, id common.UUID) error
	// RegisterFailedLogin increments the failure counter in a single statement
	// and returns the account as stored afterwards.
	RegisterFailedLogin(ctx context.Context, id common.UUID, at time.Time) (*User, error)
	RegisterSuccessfulLogin(ctx context.Context, id common.UUID, at time.Time) error
}
