package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STORE_BACKEND", "")
	t.Setenv("ESTIMATOR_BASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Equal(t, "http://localhost:8000", cfg.Estimator.BaseURL)
	assert.Equal(t, time.Duration(0), cfg.Estimator.Timeout)
	assert.Equal(t, time.Second, cfg.Wizard.AnalysisDelay)
	assert.Equal(t, 2*time.Hour, cfg.Wizard.SessionTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ESTIMATOR_BASE_URL", "http://estimator:9000/")
	t.Setenv("STORE_BACKEND", "REDIS")
	t.Setenv("ANALYSIS_DELAY", "250ms")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://estimator:9000", cfg.Estimator.BaseURL)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Wizard.AnalysisDelay)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := &Config{
		Server:    ServerConfig{Port: "8080"},
		Estimator: EstimatorConfig{BaseURL: "http://x"},
		Store:     StoreConfig{Backend: "floppy"},
	}
	assert.Error(t, cfg.Validate())

	cfg.Store.Backend = StorePostgres
	assert.Error(t, cfg.Validate(), "postgres needs DB_HOST")

	cfg.Database.Host = "db"
	assert.NoError(t, cfg.Validate())
}
