package infrastructures

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	APP_PORT                string
	LOG_LEVEL               string
	DATABASE_DRIVER         string
	DATABASE_URL            string
	DATABASE_MAX_OPEN_CONNS int
	REDIS_ADDRESS           string
	REDIS_PASSWORD          string
	REDIS_DB                int
	RATE_LIMIT_PREFIX       string
}

var Config *AppConfig

// LoadConfig reads .env when present and then the process environment.
func LoadConfig() *AppConfig {
	godotenv.Load()

	Config = &AppConfig{
		APP_PORT:                getEnv("APP_PORT", "8080"),
		LOG_LEVEL:               getEnv("LOG_LEVEL", "info"),
		DATABASE_DRIVER:         getEnv("DATABASE_DRIVER", DriverPostgres),
		DATABASE_URL:            os.Getenv("DATABASE_URL"),
		DATABASE_MAX_OPEN_CONNS: getEnvInt("DATABASE_MAX_OPEN_CONNS", 10),
		REDIS_ADDRESS:           getEnv("REDIS_ADDRESS", "localhost:6379"),
		REDIS_PASSWORD:          os.Getenv("REDIS_PASSWORD"),
		REDIS_DB:                getEnvInt("REDIS_DB", 0),
		RATE_LIMIT_PREFIX:       getEnv("RATE_LIMIT_PREFIX", "promotion-core"),
	}

	return Config
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
