package logging

import (
	"log/slog"
	"time"

	"github.com/wirkaufenfair/fairprice/internal/models"
	"gorm.io/gorm"
)

// StartCleanup runs a daily goroutine that deletes system_logs older than
// retentionDays. The first pass runs immediately.
func StartCleanup(db *gorm.DB, retentionDays int, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			purge(db, retentionCutoff(time.Now(), retentionDays))
			select {
			case <-ticker.C:
			case <-done:
				return
			}
		}
	}()
}

func retentionCutoff(now time.Time, retentionDays int) time.Time {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return now.AddDate(0, 0, -retentionDays)
}

func purge(db *gorm.DB, cutoff time.Time) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	if result.Error != nil {
		slog.Error("log cleanup failed", "action", "log_cleanup", "error", result.Error.Error())
	} else if result.RowsAffected > 0 {
		slog.Info("log cleanup completed", "deleted", result.RowsAffected)
	}
}
