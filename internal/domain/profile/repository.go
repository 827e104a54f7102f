package profile

import (
	"context"

	"jobboard/internal/common"
)

type StudentRepository interface {
	Create(ctx context.Context, profile StudentProfile) (*StudentProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*StudentProfile, error)
	GetByID(ctx context.Context, id common.UUID) (*StudentProfile, error)
	Update(ctx context.Context, profile StudentProfile) (*StudentProfile, error)
}

type CompanyRepository interface {
	Create(ctx context.Context, profile CompanyProfile) (*CompanyProfile, error)
	GetByUserID(ctx context.Context, userID common.UUID) (*CompanyProfile, error)
	Update(ctx context.Context, profile CompanyProfile) (*CompanyProfile, error)
}
