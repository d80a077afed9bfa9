package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBTimeout  time.Duration

	// Auth (admin review only)
	JWTSecret  string
	AdminToken string

	// Pseudonymous submitter sessions
	SessionSalt string

	// Server
	Port        string
	CORSOrigins string

	RateLimitPerMinute      int
	WriteRateLimitPerMinute int

	// Observability
	SentryDSN        string
	AppEnv           string
	LogRetentionDays int
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "fairprice"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		DBTimeout:  parseDuration(getEnv("DB_TIMEOUT", "5s"), 5*time.Second),

		JWTSecret:  getEnv("JWT_SECRET", ""),
		AdminToken: getEnv("ADMIN_TOKEN", ""),

		SessionSalt: getEnv("SESSION_SALT", ""),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		RateLimitPerMinute:      parseInt(getEnv("RATE_LIMIT_PER_MINUTE", "60"), 60),
		WriteRateLimitPerMinute: parseInt(getEnv("WRITE_RATE_LIMIT_PER_MINUTE", "20"), 20),

		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
		LogRetentionDays: parseInt(getEnv("LOG_RETENTION_DAYS", "30"), 30),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseInt(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
