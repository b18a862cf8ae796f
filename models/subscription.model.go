package models

import "time"

// CourseSubscription links a user to a course they follow. The composite unique
// index is the storage-level guard against concurrent toggle races: at most one
// row may exist per (user, course) pair. Rows are hard-deleted on unsubscribe,
// so there is no DeletedAt column to shadow the uniqueness constraint.
type CourseSubscription struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID  uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CreatedAt time.Time `json:"created_at"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course    Course    `json:"-" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
