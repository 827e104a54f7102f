package postulation

import (
	"context"

	"jobboard/internal/common"
)

type Repository interface {
	Create(ctx context.Context, item Postulation) (*Postulation, error)
	FindByJobOfferAndStudent(ctx context.Context, jobOfferID, studentID common.UUID) (*Postulation, error)
	Delete(ctx context.Context, id common.UUID) error
	ListByJobOffer(ctx context.Context, jobOfferID common.UUID, page common.PageRequest) ([]Postulation, int64, error)
	ListByStudent(ctx context.Context, studentID common.UUID, page common.PageRequest) ([]Postulation, int64, error)
	// UpdateStatuses applies every change or none. A postulation that does not
	// belong to jobOfferID fails the whole batch with a not found error.
	UpdateStatuses(ctx context.Context, jobOfferID common.UUID, statuses map[common.UUID]Status) error
}
