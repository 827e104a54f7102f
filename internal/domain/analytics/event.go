package analytics

import (
	"context"
	"errors"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/observability"
)

type Event struct {
	ID        common.UUID       `json:"id"`
	Name      string            `json:"name"`
	UserID    *common.UUID      `json:"user_id,omitempty"`
	Payload   map[string]string `json:"payload,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, event Event) error
}

// Fanout delivers an event to every sink. Each sink failure is logged, and the
// failures are joined into the returned error.
type Fanout []Repository

func (f Fanout) Create(ctx context.Context, event Event) error {
	if event.ID == "" {
		event.ID = common.NewUUID()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	var errs []error
	for _, sink := range f {
		if sink == nil {
			continue
		}
		if err := sink.Create(ctx, event); err != nil {
			observability.Default().WithContext(ctx).WithError(err).WithFields(map[string]any{
				"event":    event.Name,
				"event_id": event.ID,
			}).Warn("analytics sink failed")
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
