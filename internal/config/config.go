package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	Server   ServerConfig
	CORS     CORSConfig
	Billing  BillingConfig
	Paging   PagingConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

type JWTConfig struct {
	AccessSecret       string
	RefreshSecret      string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

type ServerConfig struct {
	Port    string
	GinMode string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// BillingConfig drives the monthly billing worker. Passed into the worker
// at construction time rather than read from globals.
type BillingConfig struct {
	RunDay       int           // day of month the monthly run fires
	RunHour      int           // hour of that day
	PollInterval time.Duration // worker tick
}

// PagingConfig supplies list-endpoint defaults to the pagination helpers.
type PagingConfig struct {
	DefaultLimit int
	MaxLimit     int
}

func LoadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "dorm_management"),
		},
		JWT: JWTConfig{
			AccessSecret:       getEnv("JWT_ACCESS_SECRET", "your-access-secret-key"),
			RefreshSecret:      getEnv("JWT_REFRESH_SECRET", "your-refresh-secret-key"),
			AccessTokenExpiry:  parseDuration(getEnv("ACCESS_TOKEN_EXPIRY", "15m")),
			RefreshTokenExpiry: parseDuration(getEnv("REFRESH_TOKEN_EXPIRY", "168h")),
		},
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		},
		Billing: BillingConfig{
			RunDay:       parseInt(getEnv("BILLING_RUN_DAY", "5"), 5),
			RunHour:      parseInt(getEnv("BILLING_RUN_HOUR", "12"), 12),
			PollInterval: parseDuration(getEnv("BILLING_POLL_INTERVAL", "1h")),
		},
		Paging: PagingConfig{
			DefaultLimit: parseInt(getEnv("PAGE_DEFAULT_LIMIT", "10"), 10),
			MaxLimit:     parseInt(getEnv("PAGE_MAX_LIMIT", "100"), 100),
		},
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		fmt.Printf("Warning: Invalid duration format '%s', using default\n", s)
		return 15 * time.Minute
	}
	return duration
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		fmt.Printf("Warning: Invalid integer '%s', using default %d\n", s, def)
		return def
	}
	return n
}

func parseOrigins(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
