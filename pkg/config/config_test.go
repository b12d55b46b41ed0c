package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("BASE_URL", "https://links.example.com/")
	cfg := Load()

	assert.Equal(t, "https://links.example.com/media", cfg.MediaBaseURL)
	assert.Equal(t, 30*time.Second, cfg.PageCacheTTL)
	assert.Equal(t, 4, cfg.AnalyticsWorkers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ALLOWED_EMAILS", "a@example.com, ,b@example.com")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("PAGE_CACHE_TTL", "2m")
	t.Setenv("ANALYTICS_QUEUE_SIZE", "not-a-number")
	t.Setenv("APP_ENV", "production")

	cfg := Load()
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.AllowedEmails)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 2*time.Minute, cfg.PageCacheTTL)
	assert.Equal(t, 1024, cfg.AnalyticsQueueSize)
	assert.True(t, cfg.IsProduction())
}
