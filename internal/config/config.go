package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	VerifyToken string

	// WhatsApp Cloud API credentials and endpoint
	WhatsAppToken             string
	PhoneNumberID             string
	WhatsAppBusinessAccountID string
	APIBaseURL                string
	APIVersion                string

	// Feature flags
	Enabled              bool
	CallingEnabled       bool
	CallRecordingEnabled bool
	MaxCallDuration      int // seconds, 0 = no limit

	// Database
	DBDriver   string // "sqlite" or "postgres"
	DBPath     string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Error loading .env file")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		VerifyToken: getEnv("VERIFY_TOKEN", ""),

		WhatsAppToken:             getEnv("WHATSAPP_TOKEN", ""),
		PhoneNumberID:             getEnv("PHONE_NUMBER_ID", ""),
		WhatsAppBusinessAccountID: getEnv("WABA_ID", ""),
		APIBaseURL:                getEnv("WHATSAPP_API_URL", "https://graph.facebook.com"),
		APIVersion:                getEnv("WHATSAPP_API_VERSION", "v19.0"),

		Enabled:              getBoolEnv("WHATSAPP_ENABLED", true),
		CallingEnabled:       getBoolEnv("CALLING_ENABLED", false),
		CallRecordingEnabled: getBoolEnv("CALL_RECORDING_ENABLED", false),
		MaxCallDuration:      getIntEnv("MAX_CALL_DURATION", 0),

		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "./whatsapp.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "whatsapp"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: invalid boolean for %s: %q", key, value)
		return fallback
	}
	return b
}

func getIntEnv(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Warning: invalid integer for %s: %q", key, value)
		return fallback
	}
	return n
}
