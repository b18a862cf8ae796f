package utils

import (
	"fmt"
	"testing"
	"time"

	"lms/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Lesson{},
		&models.CourseSubscription{},
		&models.NotificationLog{},
	))

	return db
}

// capturedEmail records one stubbed SendEmail call.
type capturedEmail struct {
	To      []string
	Subject string
	Body    string
}

func stubEmails(t *testing.T, fail error) *[]capturedEmail {
	t.Helper()

	var captured []capturedEmail
	original := sendNotificationEmail
	sendNotificationEmail = func(to []string, subject, body string) error {
		captured = append(captured, capturedEmail{To: to, Subject: subject, Body: body})
		return fail
	}
	t.Cleanup(func() { sendNotificationEmail = original })

	return &captured
}

func seedCourseWithSubscriber(t *testing.T, db *gorm.DB, email string) (models.Course, models.User) {
	t.Helper()

	user := models.User{Email: "owner@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{Title: "Go Basics", OwnerID: &user.ID}
	require.NoError(t, db.Create(&course).Error)

	subscriber := models.User{Email: email, Password: "x", IsActive: true}
	if email == "" {
		// sqlite enforces the unique email index even for empty strings, so
		// give the row a unique non-address value and blank it afterwards.
		subscriber.Email = "placeholder@example.com"
	}
	require.NoError(t, db.Create(&subscriber).Error)
	if email == "" {
		require.NoError(t, db.Model(&subscriber).UpdateColumn("email", "").Error)
	}

	require.NoError(t, db.Create(&models.CourseSubscription{UserID: subscriber.ID, CourseID: course.ID}).Error)

	return course, subscriber
}

// backdateCourse rewrites the course timestamp without triggering gorm's
// automatic update tracking.
func backdateCourse(t *testing.T, db *gorm.DB, courseID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Course{}).Where("id = ?", courseID).
		UpdateColumn("updated_at", at).Error)
}

func backdateLesson(t *testing.T, db *gorm.DB, lessonID uint, at time.Time) {
	t.Helper()
	require.NoError(t, db.Model(&models.Lesson{}).Where("id = ?", lessonID).
		UpdateColumn("updated_at", at).Error)
}

func TestCourseUpdateNotificationSendsToSubscribers(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, subscriber := seedCourseWithSubscriber(t, db, "student@example.com")

	status := CourseUpdateNotification(db, "job-1", course.ID)
	require.Contains(t, status, "Notifications sent to 1 subscribers")

	require.Len(t, *captured, 1)
	require.Equal(t, []string{subscriber.Email}, (*captured)[0].To)
	require.Contains(t, (*captured)[0].Subject, course.Title)

	var entry models.NotificationLog
	require.NoError(t, db.Where("job_id = ?", "job-1").First(&entry).Error)
	require.Equal(t, 1, entry.Recipients)
}

func TestCourseUpdateNotificationNoSubscribers(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course := models.Course{Title: "Empty Course"}
	require.NoError(t, db.Create(&course).Error)

	status := CourseUpdateNotification(db, "job-2", course.ID)
	require.Contains(t, status, "No subscribers")
	require.Empty(t, *captured)
}

func TestCourseUpdateNotificationNoEmailAddresses(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, _ := seedCourseWithSubscriber(t, db, "")

	status := CourseUpdateNotification(db, "job-3", course.ID)
	require.Contains(t, status, "No email addresses")
	require.Empty(t, *captured)
}

func TestCourseUpdateNotificationMailFailureIsSwallowed(t *testing.T) {
	db := newTestDB(t)
	stubEmails(t, fmt.Errorf("gateway down"))

	course, _ := seedCourseWithSubscriber(t, db, "student@example.com")

	status := CourseUpdateNotification(db, "job-4", course.ID)
	require.Contains(t, status, "Failed to send")
	require.Contains(t, status, "gateway down")
}

func TestCourseUpdateNotificationUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	status := CourseUpdateNotification(db, "job-5", 12345)
	require.Contains(t, status, "not found")
	require.Empty(t, *captured)
}

func TestLessonUpdateSuppressedWhenCourseIsFresh(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, _ := seedCourseWithSubscriber(t, db, "student@example.com")

	lesson := models.Lesson{CourseID: course.ID, Title: "New Lesson"}
	require.NoError(t, db.Create(&lesson).Error)

	// Course timestamp is "now" from the seed; a fresh course suppresses.
	status := LessonUpdateNotification(db, "job-6", lesson.ID)
	require.Contains(t, status, "suppressed")
	require.Empty(t, *captured)
}

func TestLessonUpdateNotifiesWhenCourseAndSiblingsAreStale(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, subscriber := seedCourseWithSubscriber(t, db, "student@example.com")

	sibling := models.Lesson{CourseID: course.ID, Title: "Old Lesson"}
	require.NoError(t, db.Create(&sibling).Error)

	lesson := models.Lesson{CourseID: course.ID, Title: "New Lesson"}
	require.NoError(t, db.Create(&lesson).Error)

	backdateCourse(t, db, course.ID, time.Now().Add(-5*time.Hour))
	backdateLesson(t, db, sibling.ID, time.Now().Add(-6*time.Hour))

	status := LessonUpdateNotification(db, "job-7", lesson.ID)
	require.Contains(t, status, "Notifications sent")
	require.Contains(t, status, lesson.Title)

	require.Len(t, *captured, 1)
	require.Equal(t, []string{subscriber.Email}, (*captured)[0].To)
	require.Contains(t, (*captured)[0].Body, lesson.Title)
}

func TestLessonUpdateSuppressedWhenSiblingIsFresh(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, _ := seedCourseWithSubscriber(t, db, "student@example.com")

	sibling := models.Lesson{CourseID: course.ID, Title: "Fresh Lesson"}
	require.NoError(t, db.Create(&sibling).Error)

	lesson := models.Lesson{CourseID: course.ID, Title: "New Lesson"}
	require.NoError(t, db.Create(&lesson).Error)

	backdateCourse(t, db, course.ID, time.Now().Add(-5*time.Hour))
	backdateLesson(t, db, sibling.ID, time.Now().Add(-1*time.Hour))

	status := LessonUpdateNotification(db, "job-8", lesson.ID)
	require.Contains(t, status, "suppressed")
	require.Empty(t, *captured)
}

func TestLessonUpdateTreatsZeroCourseTimestampAsStale(t *testing.T) {
	db := newTestDB(t)
	captured := stubEmails(t, nil)

	course, _ := seedCourseWithSubscriber(t, db, "student@example.com")

	lesson := models.Lesson{CourseID: course.ID, Title: "New Lesson"}
	require.NoError(t, db.Create(&lesson).Error)

	// A course that never persisted an update timestamp must not suppress.
	backdateCourse(t, db, course.ID, time.Time{})

	status := LessonUpdateNotification(db, "job-9", lesson.ID)
	require.Contains(t, status, "Notifications sent")
	require.Len(t, *captured, 1)
}
