package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything the CLI reads from the environment.
type Config struct {
	// Database
	DBType     string // postgres, mysql, sqlite, sqlserver
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string // file path when DBType is sqlite
	DBTimezone string

	// Logging
	LogLevel string
	LogDir   string

	// Optional infrastructure
	RedisAddress    string
	BleveIndexPath  string // "" keeps the search index in memory
	MetricsTextfile string // node_exporter textfile written on exit

	MaxLoginAttempts int
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	if err := godotenv.Load(".env"); err != nil {
		// .env is optional, variables may come from the shell
		Logger.Debug("No .env file loaded")
	}

	return &Config{
		DBType:           strings.ToLower(GetEnvDefault("DB_TYPE", "postgres")),
		DBHost:           GetEnvDefault("DB_HOST", "localhost"),
		DBPort:           GetEnvDefault("DB_PORT", "5432"),
		DBUser:           firstNonEmpty(GetEnv("POSTGRES_USER"), GetEnv("DB_USER")),
		DBPassword:       firstNonEmpty(GetEnv("POSTGRES_PASSWORD"), GetEnv("DB_PASSWORD")),
		DBName:           firstNonEmpty(GetEnv("POSTGRES_DB"), GetEnvDefault("DB_NAME", "epic_events_crm")),
		DBTimezone:       GetEnvDefault("DB_TIMEZONE", "UTC"),
		LogLevel:         GetEnvDefault("LOG_LEVEL", "info"),
		LogDir:           GetEnvDefault("LOG_DIR", "logs"),
		RedisAddress:     GetEnv("REDIS_ADDRESS"),
		BleveIndexPath:   GetEnvDefault("BLEVE_INDEX_PATH", "./bleve_data"),
		MetricsTextfile:  GetEnv("METRICS_TEXTFILE"),
		MaxLoginAttempts: GetEnvAsInt("MAX_LOGIN_ATTEMPTS", 3),
	}
}

// GetEnv returns the trimmed value of key, or "" when unset.
func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func GetEnvDefault(key, defaultValue string) string {
	if value := GetEnv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvAsInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(GetEnv(key))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
