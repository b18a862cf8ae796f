package courseController

import (
	"fmt"
	"testing"

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
	))

	return db
}

func seedUserAndCourse(t *testing.T, db *gorm.DB) (models.User, models.Course) {
	t.Helper()

	user := models.User{Email: "student@example.com", Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)

	course := models.Course{Title: "Go Basics", OwnerID: &user.ID}
	require.NoError(t, db.Create(&course).Error)

	return user, course
}

func countSubscriptions(t *testing.T, db *gorm.DB, userID, courseID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.CourseSubscription{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error)
	return count
}

func TestToggleSubscriptionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	user, course := seedUserAndCourse(t, db)

	msg, err := toggleSubscription(db, user.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, subscriptionAdded, msg)
	require.EqualValues(t, 1, countSubscriptions(t, db, user.ID, course.ID))

	msg, err = toggleSubscription(db, user.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, subscriptionRemoved, msg)
	require.EqualValues(t, 0, countSubscriptions(t, db, user.ID, course.ID))
}

func TestToggleSubscriptionUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	user, _ := seedUserAndCourse(t, db)

	_, err := toggleSubscription(db, user.ID, 99999)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSubscriptionUniquePerPair(t *testing.T) {
	db := newTestDB(t)
	user, course := seedUserAndCourse(t, db)

	require.NoError(t, db.Create(&models.CourseSubscription{UserID: user.ID, CourseID: course.ID}).Error)

	err := db.Create(&models.CourseSubscription{UserID: user.ID, CourseID: course.ID}).Error
	require.Error(t, err)
	require.True(t, isDuplicateKeyError(err), "expected a duplicate key error, got: %v", err)

	require.EqualValues(t, 1, countSubscriptions(t, db, user.ID, course.ID))
}

func TestToggleSubscriptionTreatsRaceLoserAsSubscribed(t *testing.T) {
	db := newTestDB(t)
	user, course := seedUserAndCourse(t, db)

	// Simulate a concurrent toggle winning the insert between our existence
	// check and our own insert: a create callback sneaks the row in first,
	// so the toggle's insert loses on the unique index. The raced insert goes
	// through a second connection so it commits independently of whatever
	// transaction the losing insert runs in.
	raceDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	raced := false
	err = db.Callback().Create().Before("gorm:create").Register("race_insert", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*models.CourseSubscription); ok && !raced {
			raced = true
			raceDB.Exec(
				"INSERT INTO course_subscriptions (user_id, course_id, created_at) VALUES (?, ?, CURRENT_TIMESTAMP)",
				user.ID, course.ID,
			)
		}
	})
	require.NoError(t, err)
	defer db.Callback().Create().Remove("race_insert")

	msg, err := toggleSubscription(db, user.ID, course.ID)
	require.NoError(t, err)
	require.Equal(t, subscriptionAdded, msg)
	require.EqualValues(t, 1, countSubscriptions(t, db, user.ID, course.ID))
}
