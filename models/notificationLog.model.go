package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NotificationLog keeps one row per processed update job so operators can see
// why a given edit did or did not mail subscribers. Status holds the outcome
// string produced by the notifier.
type NotificationLog struct {
	gorm.Model
	JobID      string         `json:"job_id" gorm:"size:64;index"`
	CourseID   uint           `json:"course_id" gorm:"index"`
	LessonID   *uint          `json:"lesson_id" gorm:"index"`
	Recipients int            `json:"recipients"`
	Status     string         `json:"status"`
	Metadata   datatypes.JSON `json:"metadata,omitempty"`
}
