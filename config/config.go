package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/qrmenu-app/utils"
)

type Config struct {
	Port     string
	GinMode  string
	LogLevel string

	DBDriver string
	DBSource string

	JWTSecret string
	JWTTTL    time.Duration

	Location            *time.Location
	SalesRetention      time.Duration
	MaintenanceInterval time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int

	AdminEmail    string
	AdminPassword string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Warning: .env file not found, using environment only")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DBDriver: strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBSource: getEnv("DB_SOURCE", "qrmenu.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTTTL:    getDuration("JWT_TTL", 24*time.Hour),

		SalesRetention:      time.Duration(getInt("SALES_RETENTION_DAYS", 60)) * 24 * time.Hour,
		MaintenanceInterval: getDuration("MAINTENANCE_INTERVAL", time.Hour),

		CORSOrigins:    splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 10),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}

	cfg.Location = time.Local
	if tz := os.Getenv("TIMEZONE"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			utils.ErrorLogger.Printf("Invalid TIMEZONE %q, falling back to local: %v", tz, err)
		} else {
			cfg.Location = loc
		}
	}

	if cfg.JWTSecret == "" {
		if cfg.GinMode == "release" {
			utils.ErrorLogger.Fatal("JWT_SECRET must be set in release mode")
		}
		utils.InfoLogger.Println("Warning: JWT_SECRET not set, using development secret")
		cfg.JWTSecret = "dev_secret_change_me"
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
