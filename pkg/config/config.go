package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AppEnv             string
	BaseURL            string
	LogLevel           string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	JWTSecret          string
	FrontendURL        string
	AllowedEmails      []string
	CORSOrigins        []string

	// Media
	UploadDir          string
	MediaBaseURL       string
	UploadMaxDimension int
	UploadMaxBytes     int64

	// Public page cache. An empty RedisURL keeps the cache in process.
	PageCacheTTL time.Duration
	RedisURL     string

	// Analytics
	AnalyticsWorkers   int
	AnalyticsQueueSize int
	KafkaBrokers       []string
	KafkaTopic         string

	ReconcileSchedule string
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	baseURL := getEnv("BASE_URL", "http://localhost:8080")
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "file:db.sqlite"),
		AppEnv:             getEnv("APP_ENV", "local"),
		BaseURL:            baseURL,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8080/auth/google/callback"),
		JWTSecret:          getEnv("JWT_SECRET", "secret"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:8080/dashboard"),
		AllowedEmails:      getEnvList("ALLOWED_EMAILS", nil),
		CORSOrigins:        getEnvList("CORS_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
		MediaBaseURL:       getEnv("MEDIA_BASE_URL", strings.TrimRight(baseURL, "/")+"/media"),
		UploadMaxDimension: getEnvInt("UPLOAD_MAX_DIMENSION", 1600),
		UploadMaxBytes:     int64(getEnvInt("UPLOAD_MAX_BYTES", 5<<20)),

		PageCacheTTL: getEnvDuration("PAGE_CACHE_TTL", 30*time.Second),
		RedisURL:     getEnv("REDIS_URL", ""),

		AnalyticsWorkers:   getEnvInt("ANALYTICS_WORKERS", 4),
		AnalyticsQueueSize: getEnvInt("ANALYTICS_QUEUE_SIZE", 1024),
		KafkaBrokers:       getEnvList("KAFKA_BROKERS", nil),
		KafkaTopic:         getEnv("KAFKA_TOPIC", "linkpage.analytics"),

		ReconcileSchedule: getEnv("RECONCILE_SCHEDULE", "@every 1h"),
	}
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

// getEnvList splits a comma separated value, dropping blanks.
func getEnvList(key string, fallback []string) []string {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
