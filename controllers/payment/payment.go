package paymentController

import (
	"fmt"
	"log"
	"time"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/utils"
	paymentValidator "lms/validators/payment"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, false
	}

	var user models.User
	if err := database.Database.Db.First(&user, userID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func CreatePayment(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPayment").(*paymentValidator.PaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Resolve the paid item; its title becomes the provider product name.
	var productName, productDescription string
	if reqData.CourseID != nil {
		var course models.Course
		if err := db.First(&course, *reqData.CourseID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
		}
		productName = course.Title
		productDescription = course.Description
	} else {
		var lesson models.Lesson
		if err := db.First(&lesson, *reqData.LessonID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
		}
		productName = lesson.Title
		productDescription = lesson.Description
	}

	payment := models.Payment{
		UserID:      user.ID,
		CourseID:    reqData.CourseID,
		LessonID:    reqData.LessonID,
		Amount:      reqData.Amount,
		PaymentDate: time.Now(),
		Method:      reqData.Method,
		Status:      models.PaymentStatusPending,
	}

	if err := db.Create(&payment).Error; err != nil {
		log.Printf("Error saving payment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create payment!", nil)
	}

	if payment.Method == models.PaymentMethodStripe {
		if err := provisionCheckout(db, &payment, productName, productDescription); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				fmt.Sprintf("Failed to create checkout session: %v", err), payment)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Payment created successfully!", payment)
}

// provisionCheckout runs the provider call chain for a provider-hosted
// payment: product, then price, then checkout session. Identifiers are
// persisted as each step succeeds, so a failure keeps the partial artifacts
// for diagnostics while the status flips to failed before the error surfaces.
func provisionCheckout(db *gorm.DB, payment *models.Payment, productName, productDescription string) error {
	client := utils.NewPaymentProviderClient()

	productID, err := client.CreateProduct(productName, productDescription)
	if err != nil {
		return failPayment(db, payment, err)
	}
	payment.ProviderProductID = productID
	if err := db.Save(payment).Error; err != nil {
		return failPayment(db, payment, err)
	}

	priceID, err := client.CreatePrice(productID, payment.Amount, config.AppConfig.PaymentCurrency)
	if err != nil {
		return failPayment(db, payment, err)
	}
	payment.ProviderPriceID = priceID
	if err := db.Save(payment).Error; err != nil {
		return failPayment(db, payment, err)
	}

	successURL := fmt.Sprintf("%s/api/payments/%d/success/", config.AppConfig.BaseURL, payment.ID)
	cancelURL := fmt.Sprintf("%s/api/payments/%d/cancel/", config.AppConfig.BaseURL, payment.ID)

	session, err := client.CreateCheckoutSession(priceID, successURL, cancelURL)
	if err != nil {
		return failPayment(db, payment, err)
	}
	payment.ProviderSessionID = session.ID
	payment.PaymentURL = session.URL
	if err := db.Save(payment).Error; err != nil {
		return failPayment(db, payment, err)
	}

	return nil
}

// failPayment flips the payment to failed before surfacing the provider
// error. Artifacts obtained so far stay on the row.
func failPayment(db *gorm.DB, payment *models.Payment, cause error) error {
	payment.Status = models.PaymentStatusFailed
	if err := db.Save(payment).Error; err != nil {
		log.Printf("Error persisting failed payment %d: %v", payment.ID, err)
	}
	return cause
}

// mapProviderStatus translates a provider session state to the local payment
// status: paid stays paid, unpaid means the customer has not completed
// checkout yet, anything else is treated as failed.
func mapProviderStatus(providerStatus string) string {
	switch providerStatus {
	case "paid":
		return models.PaymentStatusPaid
	case "unpaid":
		return models.PaymentStatusPending
	default:
		return models.PaymentStatusFailed
	}
}

func GetPaymentStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	paymentID, err := c.ParamsInt("id")
	if err != nil || paymentID < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid payment id!", nil)
	}

	db := database.Database.Db

	query := db.Preload("Course").Preload("Lesson")
	if !user.IsModerator() {
		query = query.Where("user_id = ?", user.ID)
	}

	var payment models.Payment
	if err := query.First(&payment, paymentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Payment not found!", nil)
	}

	// Reconciliation only applies to provider-hosted payments with a stored
	// session; everything else is a plain read.
	if payment.Method == models.PaymentMethodStripe && payment.ProviderSessionID != "" {
		if err := refreshPaymentStatus(db, &payment); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false,
				fmt.Sprintf("Failed to check payment status: %v", err), nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment fetched successfully!", payment)
}

// refreshPaymentStatus re-queries the provider session and persists the
// mapped status.
func refreshPaymentStatus(db *gorm.DB, payment *models.Payment) error {
	client := utils.NewPaymentProviderClient()

	session, err := client.RetrieveSession(payment.ProviderSessionID)
	if err != nil {
		return err
	}

	payment.Status = mapProviderStatus(session.PaymentStatus)
	return db.Save(payment).Error
}

func ListPayments(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db.Model(&models.Payment{})
	if !user.IsModerator() {
		db = db.Where("user_id = ?", user.ID)
	}

	if reqData, ok := c.Locals("validatedPaymentList").(*paymentValidator.ListRequest); ok {
		if reqData.CourseID != nil {
			db = db.Where("course_id = ?", *reqData.CourseID)
		}
		if reqData.LessonID != nil {
			db = db.Where("lesson_id = ?", *reqData.LessonID)
		}
		if reqData.Method != "" {
			db = db.Where("method = ?", reqData.Method)
		}
		if reqData.Status != "" {
			db = db.Where("status = ?", reqData.Status)
		}
	}

	var payments []models.Payment
	if err := db.Preload("Course").Preload("Lesson").Order("payment_date desc").Find(&payments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payments fetched successfully!", fiber.Map{
		"payments": payments,
	})
}
