package config

import (
	"os"
	"strconv"
	"time"
)

type ServerConfig struct {
	Addr        string
	Environment string
	LogLevel    string
}

type DatabaseConfig struct {
	Host     string
	User     string
	Password string
	Name     string
	Port     string
}

type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// AdminConfig holds the bootstrap administrator created at startup.
type AdminConfig struct {
	Email    string
	Password string
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Admin    AdminConfig
}

func Load() Config {
	return Config{
		Server: ServerConfig{
			Addr:        getEnvOrDefault("SERVER_ADDR", ":8080"),
			Environment: getEnvOrDefault("APP_ENV", "development"),
			LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
			User:     getEnvOrDefault("POSTGRES_USER", "test"),
			Password: getEnvOrDefault("POSTGRES_PASSWORD", "test"),
			Name:     getEnvOrDefault("POSTGRES_DB", "food_delivery"),
			Port:     getEnvOrDefault("DB_PORT", "5432"),
		},
		Auth: AuthConfig{
			TokenSecret: getEnvOrDefault("TOKEN_SECRET", "change-me"),
			TokenTTL:    time.Duration(getEnvIntOrDefault("TOKEN_TTL_MINUTES", 60)) * time.Minute,
		},
		Admin: AdminConfig{
			Email:    getEnvOrDefault("ADMIN_EMAIL", "admin@example.com"),
			Password: getEnvOrDefault("ADMIN_PASSWORD", "admin123"),
		},
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
