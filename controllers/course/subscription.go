package courseController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	subscriptionAdded   = "Подписка добавлена"
	subscriptionRemoved = "Подписка удалена"
)

// ToggleSubscription flips the caller's subscription to a course.
func ToggleSubscription(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID, err := c.ParamsInt("id")
	if err != nil || courseID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	message, err := toggleSubscription(database.Database.Db, userID, uint(courseID))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to toggle subscription!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, message, nil)
}

// toggleSubscription creates the (user, course) subscription row if absent and
// removes it if present. The check-then-act is racy between two concurrent
// toggles for the same pair; the composite unique index rejects the loser, and
// that rejection is treated as "already subscribed" rather than an error.
func toggleSubscription(db *gorm.DB, userID, courseID uint) (string, error) {
	if _, err := findCourse(db, int(courseID)); err != nil {
		return "", gorm.ErrRecordNotFound
	}

	var existing models.CourseSubscription
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&existing).Error
	if err == nil {
		if err := db.Delete(&existing).Error; err != nil {
			return "", err
		}
		return subscriptionRemoved, nil
	}
	if err != gorm.ErrRecordNotFound {
		return "", err
	}

	subscription := models.CourseSubscription{UserID: userID, CourseID: courseID}
	if err := db.Create(&subscription).Error; err != nil {
		if isDuplicateKeyError(err) {
			// A concurrent toggle won the insert; the pair is subscribed,
			// which is the state this call was about to establish anyway.
			return subscriptionAdded, nil
		}
		return "", err
	}

	return subscriptionAdded, nil
}

func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
