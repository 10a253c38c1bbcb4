package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the fallback signing key used when JWT_SECRET is not
// set. It exists so the server runs out of the box for local development;
// operators must override it in any real deployment.
const DefaultJWTSecret = "secret"

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	ResetTokenTTL  time.Duration
	UploadDir      string
	UploadMaxSize  int64
	StaticPath     string
	MigrationsPath string

	// Email (Amazon SES); reset emails are skipped when FromEmail is empty
	AWSRegion  string
	FromEmail  string
	FromName   string
	AppBaseURL string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return &Config{
		ServerPort:     getEnv("PORT", "4000"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./attendly.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenTTL:       getEnvDuration("TOKEN_TTL", 7*24*time.Hour),
		ResetTokenTTL:  getEnvDuration("RESET_TOKEN_TTL", 1*time.Hour),
		UploadDir:      getEnv("UPLOAD_DIR", "./uploads"),
		UploadMaxSize:  getEnvInt64("UPLOAD_MAX_SIZE", 2*1024*1024), // 2MB
		StaticPath:     getEnv("STATIC_PATH", "./frontend"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		FromEmail:      getEnv("SES_FROM_EMAIL", ""),
		FromName:       getEnv("SES_FROM_NAME", "Attendly"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:4000"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable (e.g. "168h")
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid duration for %s: %q, using default", key, value)
		return defaultValue
	}
	return d
}

// getEnvInt64 reads an integer environment variable
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid number for %s: %q, using default", key, value)
		return defaultValue
	}
	return n
}
