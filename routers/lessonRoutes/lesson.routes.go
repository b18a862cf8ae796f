package lessonRoutes

import (
	controllers "lms/controllers/lesson"
	"lms/middleware"
	courseValidators "lms/validators/course"
	validators "lms/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

// SetupLessonRoutes sets up all lesson routes
func SetupLessonRoutes(app *fiber.App) {
	lessonGroup := app.Group("/lesson")

	lessonGroup.Get("/list", middleware.JWTMiddleware, courseValidators.CourseList(), controllers.GetAllLessons)
	lessonGroup.Post("/", middleware.JWTMiddleware, validators.CreateLesson(), controllers.CreateLesson)
	lessonGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetLessonDetails)
	lessonGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateLesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:id", middleware.JWTMiddleware, controllers.DeleteLesson)
}
