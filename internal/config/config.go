package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"member-pricing-service/internal/pricing"
)

type Config struct {
	AppEnv   string
	LogLevel string
	Port     string

	DBHost string
	DBPort string
	DBUser string
	DBPass string
	DBName string

	RedisAddr     string
	RedisPassword string
	CacheTTL      time.Duration

	KafkaBrokers     []string
	PriceEventsTopic string
	PriceEventsGroup string

	JWTSecret  string
	SessionTTL time.Duration

	PricedRoles    []pricing.Role
	CurrencySymbol string

	RateLimit float64
	RateBurst int
}

// Load reads an optional .env file and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Port:     getEnv("PORT", "8083"),

		DBHost: getEnv("DB_HOST", "127.0.0.1"),
		DBPort: getEnv("DB_PORT", "3306"),
		DBUser: getEnv("DB_USER", "root"),
		DBPass: getEnv("DB_PASS", ""),
		DBName: getEnv("DB_NAME", "member-pricing-db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		CacheTTL:      getEnvDuration("CACHE_TTL", 10*time.Minute),

		KafkaBrokers:     getKafkaBrokerURLs(),
		PriceEventsTopic: getEnv("PRICE_EVENTS_TOPIC", "product-price-topic"),
		PriceEventsGroup: getEnv("PRICE_EVENTS_GROUP", "member-pricing-group"),

		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		SessionTTL: getEnvDuration("SESSION_TTL", 24*time.Hour),

		PricedRoles:    parseRoles(getEnv("PRICED_ROLES", string(pricing.RoleMember))),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "$"),

		RateLimit: getEnvFloat("RATE_LIMIT", 1),
		RateBurst: getEnvInt("RATE_BURST", 3),
	}
}

// parseRoles keeps only known roles, in order, without duplicates.
func parseRoles(list string) []pricing.Role {
	var roles []pricing.Role
	seen := map[pricing.Role]bool{}
	for _, s := range strings.Split(list, ",") {
		r, ok := pricing.ParseRole(s)
		if !ok || seen[r] {
			continue
		}
		seen[r] = true
		roles = append(roles, r)
	}
	return roles
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	f, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}
	return d
}
