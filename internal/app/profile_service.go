package app

import (
	"context"
	"io"
	"strings"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
	"jobboard/internal/domain/profile"
	"jobboard/internal/validation"
)

// FileUploader stores a file and returns its public URL.
type FileUploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}

type ProfileService struct {
	students  profile.StudentRepository
	companies profile.CompanyRepository
	uploader  FileUploader
	analytics analytics.Repository
}

func NewProfileService(students profile.StudentRepository, companies profile.CompanyRepository, uploader FileUploader, analytics analytics.Repository) *ProfileService {
	return &ProfileService{students: students, companies: companies, uploader: uploader, analytics: analytics}
}

type StudentProfileInput struct {
	University             *string `json:"university" validate:"required,notblank,max=255"`
	Degree                 *string `json:"degree" validate:"required,notblank,max=255"`
	Major                  *string `json:"major" validate:"required,notblank,max=255"`
	GraduationYear         *int    `json:"graduation_year" validate:"required,gte=1900,lte=2100"`
	ProfessionalExperience *string `json:"professional_experience"`
	AboutMe                *string `json:"about_me"`
}

type CompanyProfileInput struct {
	Name        *string `json:"name" validate:"required,notblank,max=255"`
	Industry    *string `json:"industry" validate:"required,notblank,max=255"`
	Location    *string `json:"location" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
}

func errProfileExists() error {
	return common.NewValidationError("User data already exists.", map[string]string{"user_data": "User data already exists."})
}

func errNotFound() error {
	return common.NewError(common.CodeNotFound, "Data not found.", nil)
}

func (s *ProfileService) AddStudent(ctx context.Context, userID common.UUID, input StudentProfileInput) (*profile.StudentProfile, error) {
	if _, err := s.students.GetByUserID(ctx, userID); err == nil {
		return nil, errProfileExists()
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	item := profile.StudentProfile{UserID: userID}
	applyStudentInput(&item, input)
	created, err := s.students.Create(ctx, item)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, errProfileExists()
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.student_created", UserID: &userID, Payload: analyticsPayload(ctx, nil)})
	return created, nil
}

func (s *ProfileService) GetStudent(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	item, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNotFound()
		}
		return nil, err
	}
	return item, nil
}

// UpdateStudent applies the fields present in input; absent fields keep their value.
func (s *ProfileService) UpdateStudent(ctx context.Context, userID common.UUID, input StudentProfileInput) (*profile.StudentProfile, error) {
	current, err := s.GetStudent(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := StudentProfileInput{
		University:             pick(input.University, current.University),
		Degree:                 pick(input.Degree, current.Degree),
		Major:                  pick(input.Major, current.Major),
		GraduationYear:         pickInt(input.GraduationYear, current.GraduationYear),
		ProfessionalExperience: pick(input.ProfessionalExperience, current.ProfessionalExperience),
		AboutMe:                pick(input.AboutMe, current.AboutMe),
	}
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	applyStudentInput(current, merged)
	updated, err := s.students.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.student_updated", UserID: &userID, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}

func (s *ProfileService) UploadCV(ctx context.Context, userID common.UUID, filename string, content io.Reader) (*profile.StudentProfile, error) {
	current, err := s.students.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNoProfile()
		}
		return nil, err
	}
	if s.uploader == nil {
		return nil, common.NewError(common.CodeInternal, "Error uploading file", nil)
	}
	url, err := s.uploader.Upload(ctx, filename, content)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "Error uploading file", err)
	}
	current.CV = url
	updated, err := s.students.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.cv_uploaded", UserID: &userID, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}

func (s *ProfileService) AddCompany(ctx context.Context, userID common.UUID, input CompanyProfileInput) (*profile.CompanyProfile, error) {
	if _, err := s.companies.GetByUserID(ctx, userID); err == nil {
		return nil, errProfileExists()
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	item := profile.CompanyProfile{UserID: userID}
	applyCompanyInput(&item, input)
	created, err := s.companies.Create(ctx, item)
	if err != nil {
		if common.Is(err, common.CodeConflict) {
			return nil, errProfileExists()
		}
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.company_created", UserID: &userID, Payload: analyticsPayload(ctx, nil)})
	return created, nil
}

func (s *ProfileService) GetCompany(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	item, err := s.companies.GetByUserID(ctx, userID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, errNotFound()
		}
		return nil, err
	}
	return item, nil
}

func (s *ProfileService) UpdateCompany(ctx context.Context, userID common.UUID, input CompanyProfileInput) (*profile.CompanyProfile, error) {
	current, err := s.GetCompany(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := CompanyProfileInput{
		Name:        pick(input.Name, current.Name),
		Industry:    pick(input.Industry, current.Industry),
		Location:    pick(input.Location, current.Location),
		Description: pick(input.Description, current.Description),
	}
	if err := validation.Struct(merged); err != nil {
		return nil, err
	}
	applyCompanyInput(current, merged)
	updated, err := s.companies.Update(ctx, *current)
	if err != nil {
		return nil, err
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "profile.company_updated", UserID: &userID, Payload: analyticsPayload(ctx, nil)})
	return updated, nil
}

func applyStudentInput(item *profile.StudentProfile, input StudentProfileInput) {
	item.University = value(input.University)
	item.Degree = value(input.Degree)
	item.Major = value(input.Major)
	if input.GraduationYear != nil {
		item.GraduationYear = *input.GraduationYear
	}
	item.ProfessionalExperience = value(input.ProfessionalExperience)
	item.AboutMe = value(input.AboutMe)
}

func applyCompanyInput(item *profile.CompanyProfile, input CompanyProfileInput) {
	item.Name = value(input.Name)
	item.Industry = value(input.Industry)
	item.Location = value(input.Location)
	item.Description = value(input.Description)
}

func pick(next *string, current string) *string {
	if next != nil {
		return next
	}
	return &current
}

func pickInt(next *int, current int) *int {
	if next != nil {
		return next
	}
	return &current
}

func value(ptr *string) string {
	if ptr == nil {
		return ""
	}
	return strings.TrimSpace(*ptr)
}
