package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	BaseURL   string
	JWTKey    string
	SaltRound int

	EmailSender    string
	SendGridAPIKey string

	KafkaBrokers     string
	KafkaUpdateTopic string
	KafkaGroupID     string

	PaymentAPIURL   string
	PaymentAPIKey   string
	PaymentCurrency string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:      getEnv("PORT", "3000"),
		BaseURL:   getEnv("BASE_URL", "http://localhost:3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender:    getEnv("EMAIL_SENDER", "noreply@lms.local"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		KafkaUpdateTopic: getEnv("KAFKA_UPDATE_TOPIC", "course-updates"),
		KafkaGroupID:     getEnv("KAFKA_GROUP_ID", "lms-notifier"),

		PaymentAPIURL:   getEnv("PAYMENT_API_URL", "https://api.stripe.com/v1"),
		PaymentAPIKey:   getEnv("PAYMENT_API_KEY", ""),
		PaymentCurrency: getEnv("PAYMENT_CURRENCY", "rub"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.PaymentAPIKey == "" {
		log.Println("Warning: PAYMENT_API_KEY is empty. Provider-hosted payments will fail.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
