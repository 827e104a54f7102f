package app

import (
	"context"
	"fmt"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/joboffer"
	"jobboard/internal/domain/postulation"
	"jobboard/internal/domain/profile"
	"jobboard/internal/validation"
)

type PostulationService struct {
	postulations postulation.Repository
	offers       joboffer.Repository
	students     profile.StudentRepository
	companies    profile.CompanyRepository
	analytics    analytics.Repository
}

func NewPostulationService(postulations postulation.Repository, offers joboffer.Repository, students profile.StudentRepository, companies profile.CompanyRepository, analytics analytics.Repository) *PostulationService {
	return &PostulationService{postulations: postulations, offers: offers, students: students, companies: companies, analytics: analytics}
}

type DecisionInput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func errJobOfferClosed() error {
	return common.NewError(common.CodeValidation, "The job offer is closed", nil)
}

func (s *PostulationService) Postulate(ctx context.Context, userID, jobOfferID common.UUID) (*postulation.Postulation, error) {
	student, offer, err := s.studentAndOffer(ctx, userID, jobOfferID)
	if err != nil {
		return nil, err
	}
	if offer.IsClosed {
		return nil, errJobOfferClosed()
	}
	if _, err := s.postulations.FindByJobOfferAndStudent(ctx, jobOfferID, student.ID); err == nil {
		return nil, common.NewError(common.CodeConflict, "You have already applied to this job offer", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	created, err := s.postulations.Create(ctx, postulation.Postulation{
		StudentID:  student.ID,
		JobOfferID: jobOfferID,
		Status:     postulation.StatusPending,
	})
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, common.NewError(common.CodeConflict, "You have already applied to this job offer", nil)
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "postulation.created", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{"postulation_id": created.ID.String(), "job_offer_id": jobOfferID.String()})})
	return created, nil
}

func (s *PostulationService) Withdraw(ctx context.Context, userID, jobOfferID common.UUID) error {
	student, offer, err := s.studentAndOffer(ctx, userID, jobOfferID)
	if err != nil {
		return err
	}
	if offer.IsClosed {
		return errJobOfferClosed()
	}
	existing, err := s.postulations.FindByJobOfferAndStudent(ctx, jobOfferID, student.ID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return common.NewError(common.CodeValidation, "You have not applied to this job offer", nil)
		}
		return err
	}
	if err := s.postulations.Delete(ctx, existing.ID); err != nil {
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "postulation.withdrawn", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{"postulation_id": existing.ID.String(), "job_offer_id": jobOfferID.String()})})
	return nil
}

// ListMine returns the calling student's postulations.
func (s *PostulationService) ListMine(ctx context.Context, userID common.UUID, page common.PageRequest) (*common.Page[postulation.Postulation], error) {
	student, err := s.studentFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, count, err := s.postulations.ListByStudent(ctx, student.ID, page)
	if err != nil {
		return nil, err
	}
	if err := page.CheckPage(count); err != nil {
		return nil, err
	}
	return &common.Page[postulation.Postulation]{Items: items, Count: count, Request: page}, nil
}

// ListForJobOffer returns the offer's postulations ordered by id. Only the
// company that created the offer may read them.
func (s *PostulationService) ListForJobOffer(ctx context.Context, userID, jobOfferID common.UUID, page common.PageRequest) (*common.Page[postulation.Postulation], error) {
	if _, err := s.ownedOffer(ctx, userID, jobOfferID); err != nil {
		return nil, err
	}
	items, count, err := s.postulations.ListByJobOffer(ctx, jobOfferID, page)
	if err != nil {
		return nil, err
	}
	if err := page.CheckPage(count); err != nil {
		return nil, err
	}
	return &common.Page[postulation.Postulation]{Items: items, Count: count, Request: page}, nil
}

// AcceptReject validates every decision before applying any of them, then
// applies the whole batch atomically.
func (s *PostulationService) AcceptReject(ctx context.Context, userID, jobOfferID common.UUID, inputs []DecisionInput) error {
	if _, err := s.ownedOffer(ctx, userID, jobOfferID); err != nil {
		return err
	}
	if len(inputs) == 0 {
		return common.NewValidationError(validation.Message, map[string]string{"postulations": "At least one postulation decision is required."})
	}
	statuses := make(map[common.UUID]postulation.Status, len(inputs))
	for i, input := range inputs {
		id, err := common.ParseUUID(strings.TrimSpace(input.ID))
		if err != nil {
			return common.NewValidationError(fmt.Sprintf("%q is not a valid UUID.", input.ID), map[string]string{fmt.Sprintf("postulations[%d].id", i): "Must be a valid UUID."})
		}
		status, ok := postulation.Action(strings.ToLower(strings.TrimSpace(input.Status))).Status()
		if !ok {
			return common.NewError(common.CodeValidation, `Invalid action. Action must be "accept" or "reject".`, nil)
		}
		statuses[id] = status
	}
	if err := s.postulations.UpdateStatuses(ctx, jobOfferID, statuses); err != nil {
		if common.Is(err, common.CodeNotFound) {
			return errNotFound()
		}
		return err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "postulation.decided", UserID: &userID, Payload: analyticsPayload(ctx, map[string]string{"job_offer_id": jobOfferID.String(), "count": fmt.Sprint(len(statuses))})})
	return nil
}

func (s *PostulationService) studentFor(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	student, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}
	return student, nil
}

func (s *PostulationService) studentAndOffer(ctx context.Context, userID, jobOfferID common.UUID) (*profile.StudentProfile, *joboffer.JobOffer, error) {
	student, err := s.studentFor(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	offer, err := s.loadOffer(ctx, jobOfferID)
	if err != nil {
		return nil, nil, err
	}
	return student, offer, nil
}

func (s *PostulationService) ownedOffer(ctx context.Context, userID, jobOfferID common.UUID) (*joboffer.JobOffer, error) {
	company, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}
	offer, err := s.loadOffer(ctx, jobOfferID)
	if err != nil {
		return nil, err
	}
	if offer.CompanyID != company.ID {
		return nil, errNotCreator()
	}
	return offer, nil
}

func (s *PostulationService) loadOffer(ctx context.Context, id common.UUID) (*joboffer.JobOffer, error) {
	offer, err := s.offers.GetByID(ctx, id)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNotFound()
		}
		return nil, err
	}
	return offer, nil
}
