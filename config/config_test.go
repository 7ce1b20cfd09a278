package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SUPPORTED_LANGS", "")
	t.Setenv("CACHE_TTL", "")
	cfg := Load()

	assert.Equal(t, "es", cfg.FallbackLang)
	assert.Equal(t, []string{"es", "en"}, cfg.Langs())
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "projects", cfg.ESProjectsIndex)
	assert.Contains(t, cfg.Folders(), "projects")
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SUPPORTED_LANGS", " EN , es ,")
	t.Setenv("CACHE_TTL", "0s")
	t.Setenv("CONTACT_RATE_LIMIT", "nope")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.dev, https://b.dev")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_NAME", "site")
	t.Setenv("DB_SSLMODE", "require")
	cfg := Load()

	assert.Equal(t, []string{"en", "es"}, cfg.Langs())
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, 5, cfg.ContactRateLimit)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.CORSOrigins())
	assert.Equal(t, "postgres://app:pw@db:5433/site?sslmode=require", cfg.PostgresDSN())
}
