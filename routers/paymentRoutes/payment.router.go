package paymentRoutes

import (
	controllers "lms/controllers/payment"
	"lms/middleware"
	validators "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up all payment routes
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Get("/list", middleware.JWTMiddleware, validators.PaymentList(), controllers.ListPayments)
	paymentGroup.Post("/", middleware.JWTMiddleware, validators.CreatePayment(), controllers.CreatePayment)
	paymentGroup.Get("/:id/status", middleware.JWTMiddleware, controllers.GetPaymentStatus)
}
