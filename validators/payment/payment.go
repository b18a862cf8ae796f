package paymentValidator

import (
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// PaymentRequest is the parsed checkout-initiation payload. Exactly one of
// CourseID or LessonID must be set.
type PaymentRequest struct {
	CourseID *uint   `json:"course_id"`
	LessonID *uint   `json:"lesson_id"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"payment_method"`
}

// ListRequest carries optional payment list filters.
type ListRequest struct {
	CourseID *uint  `query:"course_id"`
	LessonID *uint  `query:"lesson_id"`
	Method   string `query:"payment_method"`
	Status   string `query:"payment_status"`
}

var validMethods = map[string]bool{
	models.PaymentMethodCash:     true,
	models.PaymentMethodTransfer: true,
	models.PaymentMethodStripe:   true,
}

var validStatuses = map[string]bool{
	models.PaymentStatusPending: true,
	models.PaymentStatusPaid:    true,
	models.PaymentStatusFailed:  true,
}

func CreatePayment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(PaymentRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.CourseID == nil && reqData.LessonID == nil {
			errors["course_id"] = "Either a course or a lesson must be specified!"
		}
		if reqData.CourseID != nil && reqData.LessonID != nil {
			errors["course_id"] = "A course and a lesson cannot be specified together!"
		}
		if reqData.Amount <= 0 {
			errors["amount"] = "Amount must be greater than 0!"
		}
		if reqData.Method == "" {
			reqData.Method = models.PaymentMethodTransfer
		} else if !validMethods[reqData.Method] {
			errors["payment_method"] = "Payment method must be one of: cash, transfer, stripe!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPayment", reqData)
		return c.Next()
	}
}

func PaymentList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListRequest)

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		errors := make(map[string]string)

		if reqData.Method != "" && !validMethods[reqData.Method] {
			errors["payment_method"] = "Unknown payment method filter!"
		}
		if reqData.Status != "" && !validStatuses[reqData.Status] {
			errors["payment_status"] = "Unknown payment status filter!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedPaymentList", reqData)
		return c.Next()
	}
}
