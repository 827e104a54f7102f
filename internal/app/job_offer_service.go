package app

import (
	"context"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/joboffer"
	"jobboard/internal/domain/profile"
	"jobboard/internal/validation"
)

type JobOfferService struct {
	offers    joboffer.Repository
	companies profile.CompanyRepository
	analytics analytics.Repository
}

func NewJobOfferService(offers joboffer.Repository, companies profile.CompanyRepository, analytics analytics.Repository) *JobOfferService {
	return &JobOfferService{offers: offers, companies: companies, analytics: analytics}
}

type JobOfferInput struct {
	Title        *string  `json:"title" validate:"required,notblank,max=100"`
	Description  *string  `json:"description"`
	Requirements *string  `json:"requirements"`
	Location     *string  `json:"location" validate:"required,notblank,max=150"`
	WorkMode     *string  `json:"work_mode" validate:"required,oneof=remote onsite hybrid"`
	Salary       *float64 `json:"salary" validate:"omitempty,gte=0,lte=99999999.99"`
}

func errNoProfile() error {
	return common.NewError(common.CodeValidation, "The user does not have a profile created.", nil)
}

func errNotCreator() error {
	return common.NewError(common.CodeForbidden, "The user is not the creator.", nil)
}

func errDuplicateTitle() error {
	return common.NewValidationError("There is already a job offer with a similar title for this user.", map[string]string{"title": "There is already a job offer with a similar title for this user."})
}

func (s *JobOfferService) Create(ctx context.Context, userID common.UUID, input JobOfferInput) (*joboffer.JobOffer, error) {
	company, err := s.companyFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	offer := joboffer.JobOffer{CompanyID: company.ID, CompanyName: company.Name}
	applyJobOfferInput(&offer, input)
	taken, err := s.offers.ExistsByTitle(ctx, company.ID, offer.Title, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errDuplicateTitle()
	}
	created, err := s.offers.Create(ctx, offer)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, errDuplicateTitle()
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job_offer.created", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{"job_offer_id": created.ID.String()})})
	return created, nil
}

func (s *JobOfferService) Get(ctx context.Context, id common.UUID) (*joboffer.JobOffer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNotFound()
		}
		return nil, err
	}
	return offer, nil
}

// List returns one page of offers matching filter; an empty filter lists all.
func (s *JobOfferService) List(ctx context.Context, filter joboffer.Filter, page common.PageRequest) (*common.Page[joboffer.JobOffer], error) {
	items, count, err := s.offers.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if err := page.CheckPage(count); err != nil {
		return nil, err
	}
	return &common.Page[joboffer.JobOffer]{Items: items, Count: count, Request: page}, nil
}

func (s *JobOfferService) Update(ctx context.Context, userID, id common.UUID, input JobOfferInput) (*joboffer.JobOffer, error) {
	company, current, err := s.ownedOffer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	workMode := string(current.WorkMode)
	merged := JobOfferInput{
		Title:        pick(input.Title, current.Title),
		Description:  pick(input.Description, current.Description),
		Requirements: pick(input.Requirements, current.Requirements),
		Location:     pick(input.Location, current.Location),
		WorkMode:     pick(input.WorkMode, workMode),
		Salary:       current.Salary,
	}
	if input.Salary != nil {
		merged.Salary = input.Salary
	}
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	applyJobOfferInput(current, merged)
	taken, err := s.offers.ExistsByTitle(ctx, company.ID, current.Title, current.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errDuplicateTitle()
	}
	updated, err := s.offers.Update(ctx, *current)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, errDuplicateTitle()
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job_offer.updated", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{"job_offer_id": id.String()})})
	return updated, nil
}

// Close marks the offer closed. Closing an already closed offer is a no-op.
func (s *JobOfferService) Close(ctx context.Context, userID, id common.UUID) (*joboffer.JobOffer, error) {
	_, current, err := s.ownedOffer(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if current.IsClosed {
		return current, nil
	}
	closed, err := s.offers.Close(ctx, id)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "job_offer.closed", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{"job_offer_id": id.String()})})
	return closed, nil
}

func (s *JobOfferService) companyFor(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}
	return company, nil
}

// ownedOffer loads the offer and checks that the caller's company created it.
func (s *JobOfferService) ownedOffer(ctx context.Context, userID, id common.UUID) (*profile.CompanyProfile, *joboffer.JobOffer, error) {
	company, err := s.companyFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	offer, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if offer.CompanyID != company.ID {
		return nil, nil, errNotCreator()
	}
	return company, offer, nil
}

func applyJobOfferInput(offer *joboffer.JobOffer, input JobOfferInput) {
	offer.Title = value(input.Title)
	offer.Description = value(input.Description)
	offer.Requirements = value(input.Requirements)
	offer.Location = value(input.Location)
	offer.WorkMode = joboffer.WorkMode(strings.ToLower(value(input.WorkMode)))
	offer.Salary = input.Salary
}
