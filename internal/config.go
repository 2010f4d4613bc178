package internal

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPServerPort uint16
	DBName         string
	SecretKey      string
	SessionKey     string
	MediaBaseURL   string
	LogLevel       string

	AccessTTLMinutes int
	RefreshTTLDays   int
	ReadTimeout      int64
	WriteTimeout     int64
}

// LoadConfig reads the environment, optionally seeded from a .env file.
func LoadConfig() *Config {
	godotenv.Load()

	return &Config{
		HTTPServerPort: uint16(getEnvAsInt("HTTP_SERVER_PORT", 8000)),
		DBName:         getEnv("DB_NAME", "chatapi.db"),
		SecretKey:      getEnv("SECRET_KEY", "dev-super-secret-change-me"),
		SessionKey:     getEnv("SESSION_KEY", "dev-session-key-change-me"),
		MediaBaseURL:   getEnv("MEDIA_BASE_URL", "http://localhost:8000/media"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),

		AccessTTLMinutes: getEnvAsInt("ACCESS_TTL_MINUTES", 30),
		RefreshTTLDays:   getEnvAsInt("REFRESH_TTL_DAYS", 7),
		ReadTimeout:      int64(getEnvAsInt("READ_TIMEOUT", 15)),
		WriteTimeout:     int64(getEnvAsInt("WRITE_TIMEOUT", 15)),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
