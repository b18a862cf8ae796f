package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"lms/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// notifyDebounceWindow is how long after a course or sibling-lesson edit a
// lesson update stays silent.
const notifyDebounceWindow = 4 * time.Hour

// sendNotificationEmail is swapped out in tests.
var sendNotificationEmail = SendEmail

// CourseUpdateNotification mails every subscriber of the course. Every course
// edit notifies; there is no debounce at course level. All failures come back
// as the status string, never as an error: this runs as background work and
// must not fail the edit that triggered it.
func CourseUpdateNotification(db *gorm.DB, jobID string, courseID uint) string {
	var course models.Course
	if err := db.First(&course, courseID).Error; err != nil {
		return fmt.Sprintf("Course %d not found", courseID)
	}

	emails, total, err := subscriberEmails(db, courseID)
	if err != nil {
		return recordOutcome(db, jobID, course, nil, 0, fmt.Sprintf("Failed to load subscribers of course '%s': %v", course.Title, err))
	}
	if total == 0 {
		return recordOutcome(db, jobID, course, nil, 0, fmt.Sprintf("No subscribers for course '%s'", course.Title))
	}
	if len(emails) == 0 {
		return recordOutcome(db, jobID, course, nil, 0, fmt.Sprintf("No email addresses to notify for course '%s'", course.Title))
	}

	subject, body := CourseUpdateEmailBody(course.Title)
	if err := sendNotificationEmail(emails, subject, body); err != nil {
		return recordOutcome(db, jobID, course, nil, len(emails), fmt.Sprintf("Failed to send notifications for course '%s': %v", course.Title, err))
	}

	return recordOutcome(db, jobID, course, nil, len(emails),
		fmt.Sprintf("Notifications sent to %d subscribers of course '%s'", len(emails), course.Title))
}

// LessonUpdateNotification applies the debounce policy before mailing
// subscribers about a lesson edit. The notification is suppressed when the
// course itself was updated within the window (a course-level notification
// already covers it) or when any sibling lesson was updated within the window
// (that edit already triggered or will trigger one). A course that never
// persisted an update timestamp counts as stale.
func LessonUpdateNotification(db *gorm.DB, jobID string, lessonID uint) string {
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return fmt.Sprintf("Lesson %d not found", lessonID)
	}

	var course models.Course
	if err := db.First(&course, lesson.CourseID).Error; err != nil {
		return fmt.Sprintf("Course %d not found for lesson '%s'", lesson.CourseID, lesson.Title)
	}

	cutoff := time.Now().Add(-notifyDebounceWindow)

	if !course.UpdatedAt.IsZero() && course.UpdatedAt.After(cutoff) {
		return recordOutcome(db, jobID, course, &lesson, 0,
			fmt.Sprintf("Course '%s' was updated less than %v ago, notification suppressed", course.Title, notifyDebounceWindow))
	}

	var recentSiblings int64
	if err := db.Model(&models.Lesson{}).
		Where("course_id = ? AND id <> ? AND updated_at >= ?", course.ID, lesson.ID, cutoff).
		Count(&recentSiblings).Error; err != nil {
		return recordOutcome(db, jobID, course, &lesson, 0, fmt.Sprintf("Failed to check sibling lessons of course '%s': %v", course.Title, err))
	}
	if recentSiblings > 0 {
		return recordOutcome(db, jobID, course, &lesson, 0,
			fmt.Sprintf("Course '%s' has other lessons updated less than %v ago, notification suppressed", course.Title, notifyDebounceWindow))
	}

	emails, total, err := subscriberEmails(db, course.ID)
	if err != nil {
		return recordOutcome(db, jobID, course, &lesson, 0, fmt.Sprintf("Failed to load subscribers of course '%s': %v", course.Title, err))
	}
	if total == 0 {
		return recordOutcome(db, jobID, course, &lesson, 0, fmt.Sprintf("No subscribers for course '%s'", course.Title))
	}
	if len(emails) == 0 {
		return recordOutcome(db, jobID, course, &lesson, 0, fmt.Sprintf("No email addresses to notify for course '%s'", course.Title))
	}

	subject, body := LessonUpdateEmailBody(course.Title, lesson.Title)
	if err := sendNotificationEmail(emails, subject, body); err != nil {
		return recordOutcome(db, jobID, course, &lesson, len(emails), fmt.Sprintf("Failed to send notifications for lesson '%s': %v", lesson.Title, err))
	}

	return recordOutcome(db, jobID, course, &lesson, len(emails),
		fmt.Sprintf("Notifications sent to %d subscribers of course '%s' about lesson '%s'", len(emails), course.Title, lesson.Title))
}

// subscriberEmails returns the non-empty subscriber addresses for a course and
// the total subscription count, so callers can distinguish "no subscribers"
// from "subscribers without email".
func subscriberEmails(db *gorm.DB, courseID uint) ([]string, int64, error) {
	var total int64
	if err := db.Model(&models.CourseSubscription{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return nil, 0, nil
	}

	var emails []string
	err := db.Model(&models.User{}).
		Joins("JOIN course_subscriptions ON course_subscriptions.user_id = users.id").
		Where("course_subscriptions.course_id = ? AND users.email <> ''", courseID).
		Pluck("users.email", &emails).Error
	if err != nil {
		return nil, total, err
	}

	return emails, total, nil
}

func recordOutcome(db *gorm.DB, jobID string, course models.Course, lesson *models.Lesson, recipients int, status string) string {
	entry := models.NotificationLog{
		JobID:      jobID,
		CourseID:   course.ID,
		Recipients: recipients,
		Status:     status,
	}

	meta := map[string]string{"course_title": course.Title}
	if lesson != nil {
		entry.LessonID = &lesson.ID
		meta["lesson_title"] = lesson.Title
	}
	if raw, err := json.Marshal(meta); err == nil {
		entry.Metadata = datatypes.JSON(raw)
	}

	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[NOTIFY] Failed to record notification log: %v", err)
	}

	return status
}
