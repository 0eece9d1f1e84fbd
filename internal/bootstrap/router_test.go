package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/config"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/repository"
	savedsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/service"
	wizardsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/service"
)

func buildTestRouter(t *testing.T, origins []string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := metrics.New()
	client := estimate.NewClient("http://127.0.0.1:1", estimate.Options{Metrics: m})
	projects := savedsvc.NewSavedProjectService(repository.NewMemoryStore(), client, m)
	reg := wizardsvc.NewRegistry(wizardsvc.Options{AnalysisDelay: time.Second, Metrics: m}, time.Hour)

	return BuildRouter(RouterDeps{
		ServiceName: "cost-wizard",
		Version:     "test",
		CORSOrigins: origins,
		Metrics:     m,
		V1: routes.V1Deps{
			Wizard:        wizardsvc.NewWizardService(reg, client, projects, client),
			SavedProjects: projects,
		},
	})
}

func TestBuildRouter_Routes(t *testing.T) {
	r := buildTestRouter(t, []string{"*"})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodPost, "/api/v1/wizard/sessions", http.StatusCreated},
		{http.MethodGet, "/api/v1/saved-projects", http.StatusOK},
		{http.MethodGet, "/api/v1/wizard/sessions/unknown", http.StatusNotFound},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
		assert.Equal(t, tt.status, w.Code, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wizard_active_sessions 1")
}

func TestBuildRouter_CORS(t *testing.T) {
	r := buildTestRouter(t, []string{"http://app.test"})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/saved-projects", nil)
	req.Header.Set("Origin", "http://app.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		s, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Backend: config.StoreMemory}}, nil)
		require.NoError(t, err)
		assert.IsType(t, &repository.MemoryStore{}, s.Projects)
		assert.Empty(t, s.Checks)
		assert.NoError(t, s.Close())
	})

	t.Run("redis", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := &config.Config{
			Store: config.StoreConfig{Backend: config.StoreRedis},
			Redis: config.RedisConfig{Addr: mr.Addr()},
		}
		s, err := OpenStore(ctx, cfg, nil)
		require.NoError(t, err)
		assert.IsType(t, &repository.RedisStore{}, s.Projects)
		require.Contains(t, s.Checks, "redis")
		assert.NoError(t, s.Checks["redis"](ctx))
		assert.NoError(t, s.Close())
	})

	t.Run("redis unreachable", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		cfg := &config.Config{
			Store: config.StoreConfig{Backend: config.StoreRedis},
			Redis: config.RedisConfig{Addr: addr},
		}
		_, err := OpenStore(ctx, cfg, nil)
		assert.Error(t, err)
	})

	t.Run("remote", func(t *testing.T) {
		client := estimate.NewClient("http://127.0.0.1:1", estimate.Options{})
		s, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Backend: config.StoreRemote}}, client)
		require.NoError(t, err)
		assert.IsType(t, &repository.RemoteStore{}, s.Projects)
	})
}
