package joboffer

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, offer JobOffer) (*JobOffer, error)
	Update(ctx context.Context, offer JobOffer) (*JobOffer, error)
	GetByID(ctx context.Context, id common.UUID) (*JobOffer, error)
	ExistsByTitle(ctx context.Context, companyID common.UUID, title string, exclude common.UUID) (bool, error)
	Close(ctx context.Context, id common.UUID) (*JobOffer, error)
	List(ctx context.Context, filter Filter, page common.PageRequest) ([]JobOffer, int64, error)
}
