package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Post("/", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetCourseDetails)
	courseGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, controllers.DeleteCourse)

	// Subscription toggle
	courseGroup.Post("/:id/subscribe", middleware.JWTMiddleware, controllers.ToggleSubscription)
}
