package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/common"
	"jobboard/internal/domain/profile"
)

type StudentProfileRepository struct {
	db *gorm.DB
}

func NewStudentProfileRepository(db *gorm.DB) *StudentProfileRepository {
	return &StudentProfileRepository{db: db}
}

func (r *StudentProfileRepository) Create(ctx context.Context, item profile.StudentProfile) (*profile.StudentProfile, error) {
	if item.ID == "" {
		item.ID = common.NewUUID()
	}
	row := toStudentRow(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, wrapError(err, "failed to create student profile")
	}
	return fromStudentRow(row), nil
}

func (r *StudentProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	return r.get(ctx, "user_id = ?", userID)
}

func (r *StudentProfileRepository) GetByID(ctx context.Context, id common.UUID) (*profile.StudentProfile, error) {
	return r.get(ctx, "id = ?", id)
}

func (r *StudentProfileRepository) get(ctx context.Context, condition string, value common.UUID) (*profile.StudentProfile, error) {
	var row studentRow
	if err := r.db.WithContext(ctx).Where(condition, value).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load student profile")
	}
	return fromStudentRow(row), nil
}

func (r *StudentProfileRepository) Update(ctx context.Context, item profile.StudentProfile) (*profile.StudentProfile, error) {
	result := r.db.WithContext(ctx).Model(&studentRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"university":              item.University,
		"degree":                  item.Degree,
		"major":                   item.Major,
		"graduation_year":         item.GraduationYear,
		"professional_experience": item.ProfessionalExperience,
		"about_me":                item.AboutMe,
		"cv":                      item.CV,
		"updated_at":              time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, wrapError(result.Error, "failed to update student profile")
	}
	return r.GetByID(ctx, item.ID)
}

type CompanyProfileRepository struct {
	db *gorm.DB
}

func NewCompanyProfileRepository(db *gorm.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

func (r *CompanyProfileRepository) Create(ctx context.Context, item profile.CompanyProfile) (*profile.CompanyProfile, error) {
	if item.ID == "" {
		item.ID = common.NewUUID()
	}
	row := toCompanyRow(item)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, wrapError(err, "failed to create company profile")
	}
	return fromCompanyRow(row), nil
}

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	var row companyRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load company profile")
	}
	return fromCompanyRow(row), nil
}

func (r *CompanyProfileRepository) Update(ctx context.Context, item profile.CompanyProfile) (*profile.CompanyProfile, error) {
	result := r.db.WithContext(ctx).Model(&companyRow{}).Where("id = ?", item.ID).Updates(map[string]any{
		"name":        item.Name,
		"industry":    item.Industry,
		"location":    item.Location,
		"description": item.Description,
		"updated_at":  time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, wrapError(result.Error, "failed to update company profile")
	}
	var row companyRow
	if err := r.db.WithContext(ctx).Where("id = ?", item.ID).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load company profile")
	}
	return fromCompanyRow(row), nil
}

func toStudentRow(item profile.StudentProfile) studentRow {
	return studentRow{
		ID:                     item.ID,
		UserID:                 item.UserID,
		University:             item.University,
		Degree:                 item.Degree,
		Major:                  item.Major,
		GraduationYear:         item.GraduationYear,
		ProfessionalExperience: item.ProfessionalExperience,
		AboutMe:                item.AboutMe,
		CV:                     item.CV,
		CreatedAt:              item.CreatedAt,
		UpdatedAt:              item.UpdatedAt,
	}
}

func fromStudentRow(row studentRow) *profile.StudentProfile {
	return &profile.StudentProfile{
		ID:                     row.ID,
		UserID:                 row.UserID,
		University:             row.University,
		Degree:                 row.Degree,
		Major:                  row.Major,
		GraduationYear:         row.GraduationYear,
		ProfessionalExperience: row.ProfessionalExperience,
		AboutMe:                row.AboutMe,
		CV:                     row.CV,
		CreatedAt:              row.CreatedAt,
		UpdatedAt:              row.UpdatedAt,
	}
}

func toCompanyRow(item profile.CompanyProfile) companyRow {
	return companyRow{
		ID:          item.ID,
		UserID:      item.UserID,
		Name:        item.Name,
		Industry:    item.Industry,
		Location:    item.Location,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func fromCompanyRow(row companyRow) *profile.CompanyProfile {
	return &profile.CompanyProfile{
		ID:          row.ID,
		UserID:      row.UserID,
		Name:        row.Name,
		Industry:    row.Industry,
		Location:    row.Location,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
