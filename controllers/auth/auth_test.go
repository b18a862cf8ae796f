package authController

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"lms/config"
	"lms/database"
	"lms/models"
	authValidator "lms/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSignupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	database.Database = database.DbInstance{Db: db}
	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	app := fiber.New()
	app.Post("/auth/signup", authValidator.Signup(), Signup)

	return app, db
}

func postSignup(t *testing.T, app *fiber.App, email string) int {
	t.Helper()

	body := fmt.Sprintf(`{"email": %q, "password": "secret123", "password_confirm": "secret123"}`, email)
	req := httptest.NewRequest("POST", "/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()

	return resp.StatusCode
}

func TestSignupRejectsKnownEmail(t *testing.T) {
	app, _ := newSignupApp(t)

	require.Equal(t, fiber.StatusCreated, postSignup(t, app, "student@example.com"))
	require.Equal(t, fiber.StatusConflict, postSignup(t, app, "student@example.com"))
}

func TestSignupRaceLoserGetsConflict(t *testing.T) {
	app, db := newSignupApp(t)

	// A concurrent signup wins the insert between the exists check and ours:
	// a create callback sneaks the row in through a second connection, so our
	// own insert loses on the unique email index.
	raceDB, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	raced := false
	err = db.Callback().Create().Before("gorm:create").Register("race_insert", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Model.(*models.User); ok && !raced {
			raced = true
			require.NoError(t, raceDB.Create(&models.User{
				Email:    "student@example.com",
				Password: "x",
				IsActive: true,
			}).Error)
		}
	})
	require.NoError(t, err)
	defer db.Callback().Create().Remove("race_insert")

	require.Equal(t, fiber.StatusConflict, postSignup(t, app, "student@example.com"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "student@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}
