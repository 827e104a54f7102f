package sqlstore

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"jobboard/internal/common"
	"jobboard/internal/domain/analytics"
)

type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

func (r *AnalyticsRepository) Create(ctx context.Context, event analytics.Event) error {
	if event.ID == "" {
		event.ID = common.NewUUID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	row := analyticsEventRow{
		ID:        event.ID,
		Name:      event.Name,
		UserID:    event.UserID,
		CreatedAt: event.CreatedAt,
	}
	if len(event.Payload) > 0 {
		payload, err := json.Marshal(event.Payload)
		if err != nil {
			return common.NewError(common.CodeInternal, "failed to encode analytics payload", err)
		}
		row.Payload = string(payload)
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return wrapError(err, "failed to store analytics event")
	}
	return nil
}
