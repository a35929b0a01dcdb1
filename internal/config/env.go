package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

type AppConfig struct {
	Port           string
	Env            string
	SessionStore   string
	SessionIdle    time.Duration
	SessionMax     int
	RedisAddress   string
	RedisPassword  string
	RedisDB        int
	RateLimitRPS   float64
	RateLimitBurst int
	SeedDays       int
}

// LoadEnv reads .env into the process environment. Callers treat a missing
// file as a warning; the process environment alone is enough to run.
func LoadEnv(files ...string) error {
	return godotenv.Load(files...)
}

func LoadAppConfig() AppConfig {
	return AppConfig{
		Port:           envString("APP_PORT", "3000"),
		Env:            envString("APP_ENV", "development"),
		SessionStore:   strings.ToLower(envString("SESSION_STORE", SessionStoreMemory)),
		SessionIdle:    time.Duration(envInt("SESSION_IDLE_MINUTES", 30)) * time.Minute,
		SessionMax:     envInt("SESSION_MAX_ENTRIES", 10000),
		RedisAddress:   envString("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		RateLimitRPS:   envFloat("RATE_LIMIT_RPS", 50),
		RateLimitBurst: envInt("RATE_LIMIT_BURST", 100),
		SeedDays:       envInt("SEED_DAYS", 14),
	}
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
