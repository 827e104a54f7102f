package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates every table the repositories use.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
