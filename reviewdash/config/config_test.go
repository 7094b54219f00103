package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := LoadConfig()

	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Contains(t, cfg.IntentsPath, "intent_broader_categories.json")
	assert.Contains(t, cfg.WorkAreasPath, "work_area_broader_categories.json")
	assert.False(t, cfg.MinIOUseSSL)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "gpt-4o", cfg.OpenAIModel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAIBaseURL)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("REQUEST_TIMEOUT", "5s")

	cfg := LoadConfig()
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.True(t, cfg.MinIOUseSSL)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestDSN(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("db_password", "pw")
	cfg := fromViper(v)

	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=reviewdash sslmode=disable", cfg.DSN())
}
