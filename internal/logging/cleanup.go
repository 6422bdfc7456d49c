package logging

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/job-portal/internal/models"
	"gorm.io/gorm"
)

// Cleanup deletes system_logs older than before.
func Cleanup(ctx context.Context, db *gorm.DB, before time.Time) (int64, error) {
	result := db.WithContext(ctx).Where("timestamp < ?", before).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
