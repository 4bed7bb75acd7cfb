package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	DefaultLocale string
	SeedDemoData  bool

	Selection SelectionConfig
	Export    ExportConfig
}

// SelectionConfig controls where per-session selection state lives.
type SelectionConfig struct {
	Store      string // "memory" or "redis"
	RedisAddr  string
	TTLSeconds int
}

// ExportConfig bounds archive construction.
type ExportConfig struct {
	TempDir                  string
	MaxSelection             int
	BaseTimeoutSeconds       int
	PerInvoiceTimeoutSeconds int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "portal"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "portal"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 300),

		DefaultLocale: getenv("DEFAULT_LOCALE", "en"),
		SeedDemoData:  getenvBool("SEED_DEMO_DATA", false),

		Selection: SelectionConfig{
			Store:      strings.ToLower(getenv("SELECTION_STORE", "memory")),
			RedisAddr:  getenv("SELECTION_REDIS_ADDR", "localhost:6379"),
			TTLSeconds: getenvInt("SELECTION_TTL", 3600),
		},
		Export: ExportConfig{
			TempDir:                  getenv("EXPORT_TEMP_DIR", os.TempDir()),
			MaxSelection:             getenvInt("EXPORT_MAX_SELECTION", 100),
			BaseTimeoutSeconds:       getenvInt("EXPORT_BASE_TIMEOUT", 30),
			PerInvoiceTimeoutSeconds: getenvInt("EXPORT_PER_INVOICE_TIMEOUT", 5),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}
