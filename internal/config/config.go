package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	RedisURL    string
	CachePrefix string

	RecordCacheTTL    time.Duration
	ListCacheTTL      time.Duration
	MessagesCacheTTL  time.Duration
	DashboardCacheTTL time.Duration

	JWTSecret string

	ProtocolPrefix string

	CORSOrigins string
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DatabaseURL:    getEnv("DATABASE_URL", ""),
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getIntEnv("DB_MAX_IDLE_CONNS", 5),

		RedisURL:    getEnv("REDIS_URL", "redis://localhost:6379"),
		CachePrefix: getEnv("CACHE_PREFIX", "ouvidoria"),

		RecordCacheTTL:    getDurationEnv("RECORD_CACHE_TTL", time.Hour),
		ListCacheTTL:      getDurationEnv("LIST_CACHE_TTL", 5*time.Minute),
		MessagesCacheTTL:  getDurationEnv("MESSAGES_CACHE_TTL", 5*time.Minute),
		DashboardCacheTTL: getDurationEnv("DASHBOARD_CACHE_TTL", 10*time.Minute),

		JWTSecret: getEnv("JWT_SECRET", ""),

		ProtocolPrefix: getEnv("PROTOCOL_PREFIX", "OUV"),

		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:5173"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
