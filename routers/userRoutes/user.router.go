package userRoutes

import (
	controllers "lms/controllers/user"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up user profile routes
func SetupUserRoutes(app *fiber.App) {
	userGroup := app.Group("/user")

	userGroup.Get("/me", middleware.JWTMiddleware, controllers.GetMe)
	userGroup.Put("/me", middleware.JWTMiddleware, controllers.UpdateMe)
}
