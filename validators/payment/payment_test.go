package paymentValidator

import (
	"net/http/httptest"
	"strings"
	"testing"

	"lms/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// runCreatePayment pushes a JSON body through the validator and reports the
// response status plus the request data the validator stored, if any.
func runCreatePayment(t *testing.T, body string) (int, *PaymentRequest) {
	t.Helper()

	app := fiber.New()

	var stored *PaymentRequest
	app.Post("/payment", CreatePayment(), func(c *fiber.Ctx) error {
		stored, _ = c.Locals("validatedPayment").(*PaymentRequest)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest("POST", "/payment", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.StatusCode, stored
}

func TestCreatePaymentRequiresExactlyOneTarget(t *testing.T) {
	status, stored := runCreatePayment(t, `{"amount": 150}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	require.Nil(t, stored)

	status, stored = runCreatePayment(t, `{"course_id": 1, "lesson_id": 2, "amount": 150}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
	require.Nil(t, stored)

	status, stored = runCreatePayment(t, `{"course_id": 1, "amount": 150}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, stored)
	require.NotNil(t, stored.CourseID)
	require.Nil(t, stored.LessonID)

	status, stored = runCreatePayment(t, `{"lesson_id": 2, "amount": 150}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, stored)
	require.Nil(t, stored.CourseID)
	require.NotNil(t, stored.LessonID)
}

func TestCreatePaymentRejectsNonPositiveAmount(t *testing.T) {
	status, _ := runCreatePayment(t, `{"course_id": 1, "amount": 0}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = runCreatePayment(t, `{"course_id": 1, "amount": -10}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestCreatePaymentMethodHandling(t *testing.T) {
	status, stored := runCreatePayment(t, `{"course_id": 1, "amount": 150}`)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, models.PaymentMethodTransfer, stored.Method)

	status, stored = runCreatePayment(t, `{"course_id": 1, "amount": 150, "payment_method": "stripe"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, models.PaymentMethodStripe, stored.Method)

	status, _ = runCreatePayment(t, `{"course_id": 1, "amount": 150, "payment_method": "crypto"}`)
	require.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestPaymentListRejectsUnknownFilters(t *testing.T) {
	app := fiber.New()
	app.Get("/payment/list", PaymentList(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/payment/list?payment_status=refunded", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/payment/list?payment_method=stripe&payment_status=paid", nil))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}
