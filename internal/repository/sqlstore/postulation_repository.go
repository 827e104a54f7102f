package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/common"
	"jobboard/internal/domain/postulation"
)

type PostulationRepository struct {
	db *gorm.DB
}

func NewPostulationRepository(db *gorm.DB) *PostulationRepository {
	return &PostulationRepository{db: db}
}

func (r *PostulationRepository) Create(ctx context.Context, item postulation.Postulation) (*postulation.Postulation, error) {
	if item.ID == "" {
		item.ID = common.NewUUID()
	}
	if item.Status == "" {
		item.Status = postulation.StatusPending
	}
	if item.AppliedAt.IsZero() {
		item.AppliedAt = time.Now().UTC()
	}
	row := postulationRow{
		ID:         item.ID,
		StudentID:  item.StudentID,
		JobOfferID: item.JobOfferID,
		Status:     string(item.Status),
		AppliedAt:  item.AppliedAt,
		UpdatedAt:  item.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return nil, wrapError(err, "failed to create postulation")
	}
	return fromPostulationRow(row), nil
}

func (r *PostulationRepository) FindByJobOfferAndStudent(ctx context.Context, jobOfferID, studentID common.UUID) (*postulation.Postulation, error) {
	var row postulationRow
	err := r.db.WithContext(ctx).Where("job_offer_id = ? AND student_id = ?", jobOfferID, studentID).Take(&row).Error
	if err != nil {
		return nil, wrapError(err, "failed to load postulation")
	}
	return fromPostulationRow(row), nil
}

func (r *PostulationRepository) Delete(ctx context.Context, id common.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postulationRow{})
	if result.Error != nil {
		return wrapError(result.Error, "failed to delete postulation")
	}
	if result.RowsAffected == 0 {
		return errNotFound()
	}
	return nil
}

func (r *PostulationRepository) ListByJobOffer(ctx context.Context, jobOfferID common.UUID, page common.PageRequest) ([]postulation.Postulation, int64, error) {
	return r.list(ctx, "job_offer_id = ?", jobOfferID, page, "id")
}

func (r *PostulationRepository) ListByStudent(ctx context.Context, studentID common.UUID, page common.PageRequest) ([]postulation.Postulation, int64, error) {
	return r.list(ctx, "student_id = ?", studentID, page, "applied_at DESC")
}

func (r *PostulationRepository) list(ctx context.Context, condition string, value common.UUID, page common.PageRequest, order string) ([]postulation.Postulation, int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&postulationRow{}).Where(condition, value).Count(&count).Error; err != nil {
		return nil, 0, wrapError(err, "failed to count postulations")
	}
	if count == 0 {
		return []postulation.Postulation{}, 0, nil
	}
	var rows []postulationRow
	err := r.db.WithContext(ctx).
		Where(condition, value).
		Order(order).
		Order("id").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, 0, wrapError(err, "failed to list postulations")
	}
	items := make([]postulation.Postulation, 0, len(rows))
	for _, row := range rows {
		items = append(items, *fromPostulationRow(row))
	}
	return items, count, nil
}

func (r *PostulationRepository) UpdateStatuses(ctx context.Context, jobOfferID common.UUID, statuses map[common.UUID]postulation.Status) error {
	if len(statuses) == 0 {
		return nil
	}
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, status := range statuses {
			var row postulationRow
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ? AND job_offer_id = ?", id, jobOfferID).
				Take(&row).Error
			if err != nil {
				return wrapError(err, "failed to load postulation")
			}
			err = tx.Model(&postulationRow{}).Where("id = ?", id).Updates(map[string]any{
				"status":     string(status),
				"updated_at": now,
			}).Error
			if err != nil {
				return wrapError(err, "failed to update postulation status")
			}
		}
		return nil
	})
}

func fromPostulationRow(row postulationRow) *postulation.Postulation {
	return &postulation.Postulation{
		ID:         row.ID,
		StudentID:  row.StudentID,
		JobOfferID: row.JobOfferID,
		Status:     postulation.Status(row.Status),
		AppliedAt:  row.AppliedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
