package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Data source names accepted in DATA_SOURCE.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
	SourceSQLite   = "sqlite"
)

// Config holds all application configuration loaded from environment variables.
// Database credentials live only here and are passed explicitly to the loaders.
type Config struct {
	DataSource string
	CSVPath    string
	SQLitePath string
	Table      string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	CacheSize      int
	MaxConcurrency int
	MaxRetries     int
	BatchSize      int

	ExportPath string
	Debug      bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() *Config {
	return &Config{
		DataSource: strings.ToLower(getEnv("DATA_SOURCE", SourceCSV)),
		CSVPath:    getEnv("CSV_PATH", "./data/kc_house_data.csv"),
		SQLitePath: getEnv("SQLITE_PATH", "./data/kchouses.db"),
		Table:      getEnv("HOUSES_TABLE", "kchouses2"),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "kchouses"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "kchouses"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		CacheSize:      getEnvInt("CACHE_SIZE", 64),
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 4),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		BatchSize:      getEnvInt("BATCH_SIZE", 500),

		ExportPath: getEnv("EXPORT_PATH", ""),
		Debug:      getEnvBool("LOG_DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	parts := []string{
		"host=" + c.PostgresHost,
		"port=" + c.PostgresPort,
		"user=" + c.PostgresUser,
		"dbname=" + c.PostgresDB,
		"sslmode=" + c.PostgresSSLMode,
	}
	if c.PostgresPassword != "" {
		parts = append(parts, "password="+c.PostgresPassword)
	}
	return strings.Join(parts, " ")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
