package sqlstore

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/common"
	"jobboard/internal/domain/joboffer"
)

type JobOfferRepository struct {
	db *gorm.DB
}

func NewJobOfferRepository(db *gorm.DB) *JobOfferRepository {
	return &JobOfferRepository{db: db}
}

func (r *JobOfferRepository) Create(ctx context.Context, offer joboffer.JobOffer) (*joboffer.JobOffer, error) {
	if offer.ID == "" {
		offer.ID = common.NewUUID()
	}
	row := toJobOfferRow(offer)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, wrapError(err, "failed to create job offer")
	}
	return r.GetByID(ctx, row.ID)
}

func (r *JobOfferRepository) Update(ctx context.Context, offer joboffer.JobOffer) (*joboffer.JobOffer, error) {
	err := r.db.WithContext(ctx).Model(&jobOfferRow{}).Where("id = ?", offer.ID).Updates(map[string]any{
		"title":        offer.Title,
		"description":  offer.Description,
		"requirements": offer.Requirements,
		"location":     offer.Location,
		"work_mode":    string(offer.WorkMode),
		"salary":       offer.Salary,
		"updated_at":   time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, wrapError(err, "failed to update job offer")
	}
	return r.GetByID(ctx, offer.ID)
}

func (r *JobOfferRepository) GetByID(ctx context.Context, id common.UUID) (*joboffer.JobOffer, error) {
	var row jobOfferRow
	if err := r.db.WithContext(ctx).Preload("Company").Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load job offer")
	}
	return fromJobOfferRow(row), nil
}

// ExistsByTitle compares titles case-insensitively within one company.
func (r *JobOfferRepository) ExistsByTitle(ctx context.Context, companyID common.UUID, title string, exclude common.UUID) (bool, error) {
	query := r.db.WithContext(ctx).Model(&jobOfferRow{}).
		Where("company_id = ? AND LOWER(title) = ?", companyID, strings.ToLower(strings.TrimSpace(title)))
	if exclude != "" {
		query = query.Where("id <> ?", exclude)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, wrapError(err, "failed to check job offer title")
	}
	return count > 0, nil
}

func (r *JobOfferRepository) Close(ctx context.Context, id common.UUID) (*joboffer.JobOffer, error) {
	err := r.db.WithContext(ctx).Model(&jobOfferRow{}).Where("id = ?", id).Updates(map[string]any{
		"is_closed":  true,
		"updated_at": time.Now().UTC(),
	}).Error
	if err != nil {
		return nil, wrapError(err, "failed to close job offer")
	}
	return r.GetByID(ctx, id)
}

func (r *JobOfferRepository) List(ctx context.Context, filter joboffer.Filter, page common.PageRequest) ([]joboffer.JobOffer, int64, error) {
	filtered := func() *gorm.DB {
		return applyJobOfferFilter(r.db.WithContext(ctx).Model(&jobOfferRow{}), filter)
	}

	var count int64
	if err := filtered().Count(&count).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count job offers")
	}
	if count == 0 {
		return []joboffer.JobOffer{}, 0, nil
	}

	var rows []jobOfferRow
	err := filtered().Preload("Company").
		Order("created_at DESC").
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, wrapError(err, "failed to list job offers")
	}
	items := make([]joboffer.JobOffer, 0, len(rows))
	for _, row := range rows {
		items = append(items, *fromJobOfferRow(row))
	}
	return items, count, nil
}

func applyJobOfferFilter(query *gorm.DB, filter joboffer.Filter) *gorm.DB {
	if filter.Title != "" {
		query = query.Where("LOWER(title) LIKE ?", likePattern(filter.Title))
	}
	if filter.Location != "" {
		query = query.Where("LOWER(location) LIKE ?", likePattern(filter.Location))
	}
	if filter.Requirements != "" {
		query = query.Where("LOWER(requirements) LIKE ?", likePattern(filter.Requirements))
	}
	if filter.Company != "" {
		query = query.Where("company_id IN (SELECT id FROM company_profiles WHERE LOWER(name) LIKE ?)", likePattern(filter.Company))
	}
	if filter.WorkMode != "" {
		query = query.Where("work_mode = ?", string(filter.WorkMode))
	}
	if filter.IsClosed != nil {
		query = query.Where("is_closed = ?", *filter.IsClosed)
	}
	if filter.MinSalary != nil {
		query = query.Where("salary >= ?", *filter.MinSalary)
	}
	if filter.MaxSalary != nil {
		query = query.Where("salary <= ?", *filter.MaxSalary)
	}
	if filter.CreatedOn != nil {
		start, end := dayRange(*filter.CreatedOn)
		query = query.Where("created_at >= ? AND created_at < ?", start, end)
	}
	if filter.UpdatedOn != nil {
		start, end := dayRange(*filter.UpdatedOn)
		query = query.Where("updated_at >= ? AND updated_at < ?", start, end)
	}
	return query
}

// likePattern builds a lowercase substring pattern with LIKE wildcards escaped.
func likePattern(value string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(value))
	return "%" + escaped + "%"
}

func dayRange(day time.Time) (time.Time, time.Time) {
	day = day.UTC()
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

func toJobOfferRow(offer joboffer.JobOffer) jobOfferRow {
	return jobOfferRow{
		ID:           offer.ID,
		CompanyID:    offer.CompanyID,
		Title:        offer.Title,
		Description:  offer.Description,
		Requirements: offer.Requirements,
		Location:     offer.Location,
		WorkMode:     string(offer.WorkMode),
		Salary:       offer.Salary,
		IsClosed:     offer.IsClosed,
		CreatedAt:    offer.CreatedAt,
		UpdatedAt:    offer.UpdatedAt,
	}
}

func fromJobOfferRow(row jobOfferRow) *joboffer.JobOffer {
	return &joboffer.JobOffer{
		ID:           row.ID,
		CompanyID:    row.CompanyID,
		CompanyName:  row.Company.Name,
		Title:        row.Title,
		Description:  row.Description,
		Requirements: row.Requirements,
		Location:     row.Location,
		WorkMode:     joboffer.WorkMode(row.WorkMode),
		Salary:       row.Salary,
		IsClosed:     row.IsClosed,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
