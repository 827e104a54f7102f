package sqlstore

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"jobboard/internal/common"
	"jobboard/internal/domain/auth"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session auth.Session) error {
	row := sessionRow{
		ID:        session.ID,
		UserID:    session.UserID,
		ExpiresAt: session.ExpiresAt,
		RevokedAt: session.RevokedAt,
		CreatedAt: session.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error; err != nil {
		return wrapError(err, "failed to create session")
	}
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id common.UUID) (*auth.Session, error) {
	var row sessionRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, wrapError(err, "failed to load session")
	}
	return &auth.Session{
		ID:        row.ID,
		UserID:    row.UserID,
		ExpiresAt: row.ExpiresAt,
		RevokedAt: row.RevokedAt,
		CreatedAt: row.CreatedAt,
	}, nil
}

func (r *SessionRepository) Revoke(ctx context.Context, id common.UUID, revokedAt time.Time) error {
	result := r.db.WithContext(ctx).Model(&sessionRow{}).Where("id = ? AND revoked_at IS NULL", id).Update("revoked_at", revokedAt)
	if result.Error != nil {
		return wrapError(result.Error, "failed to revoke session")
	}
	if result.RowsAffected == 0 {
		return errNotFound()
	}
	return nil
}

func (r *SessionRepository) DeleteInactive(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ? OR revoked_at <= ?", before, before).Delete(&sessionRow{})
	if result.Error != nil {
		return 0, wrapError(result.Error, "failed to purge sessions")
	}
	return result.RowsAffected, nil
}
