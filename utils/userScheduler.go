package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// inactivityCutoff is how long a user may stay away before being deactivated.
const inactivityCutoff = 30 * 24 * time.Hour

// InitializeUserScheduler sets up the daily inactive-user check.
func InitializeUserScheduler() {
	log.Println("[USER-SCHEDULER] Initializing user scheduler...")

	c := cron.New()

	// Run daily at 3 AM
	c.AddFunc("0 3 * * *", func() {
		log.Println("[USER-SCHEDULER] Running daily inactive user check...")
		count, err := BlockInactiveUsers(database.Database.Db)
		if err != nil {
			log.Printf("[USER-SCHEDULER] Error blocking inactive users: %v", err)
			return
		}
		if count > 0 {
			log.Printf("[USER-SCHEDULER] Blocked %d inactive users", count)
		}
	})

	c.Start()
	log.Println("[USER-SCHEDULER] User scheduler started - runs daily at 3 AM")
}

// BlockInactiveUsers deactivates accounts with no login for over a month,
// including accounts that never logged in at all.
func BlockInactiveUsers(db *gorm.DB) (int64, error) {
	cutoff := time.Now().Add(-inactivityCutoff)

	result := db.Model(&models.User{}).
		Where("is_active = ?", true).
		Where("last_login < ? OR last_login IS NULL", cutoff).
		Update("is_active", false)

	return result.RowsAffected, result.Error
}
