package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	JWTSecret          string
	TokenTTLHours      int
	LogLevel           string
	ReviewSessionLimit int
	WeakTopicPageSize  int
	WeakTopicMinErrors int
	ReminderHour       int
	StaticDir          string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:qazaqstep.db"),
		JWTSecret:          envOr("JWT_SECRET", ""),
		TokenTTLHours:      envIntOr("TOKEN_TTL_HOURS", 168),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		ReviewSessionLimit: envIntOr("REVIEW_SESSION_LIMIT", 10),
		WeakTopicPageSize:  envIntOr("WEAK_TOPIC_PAGE_SIZE", 5),
		WeakTopicMinErrors: envIntOr("WEAK_TOPIC_MIN_ERRORS", 2),
		ReminderHour:       envIntOr("REMINDER_HOUR", 8),
		StaticDir:          envOr("STATIC_DIR", "web/static"),
	}
}

// Validate reports every configuration problem at once so a misconfigured
// deployment fails with a complete picture.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	if c.TokenTTLHours <= 0 {
		problems = append(problems, "TOKEN_TTL_HOURS must be positive")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not a valid level", c.LogLevel))
	}
	if c.ReviewSessionLimit <= 0 {
		problems = append(problems, "REVIEW_SESSION_LIMIT must be positive")
	}
	if c.WeakTopicPageSize <= 0 {
		problems = append(problems, "WEAK_TOPIC_PAGE_SIZE must be positive")
	}
	if c.WeakTopicMinErrors <= 0 {
		problems = append(problems, "WEAK_TOPIC_MIN_ERRORS must be positive")
	}
	if c.ReminderHour < 0 || c.ReminderHour > 23 {
		problems = append(problems, "REMINDER_HOUR must be between 0 and 23")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
