package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/repository"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/service"
)

type stubPDF struct{ err error }

func (s stubPDF) GeneratePDF(ctx context.Context, body any) (io.ReadCloser, error) {
	if s.err != nil {
		return nil, s.err
	}
	return io.NopCloser(strings.NewReader("%PDF-1.7")), nil
}

type envelope struct {
	OK       bool                  `json:"ok"`
	Error    string                `json:"error"`
	Project  domain.SavedProject   `json:"project"`
	Projects []domain.SavedProject `json:"projects"`
}

func setup(t *testing.T, pdf service.PDFRenderer, store repository.Store) (*gin.Engine, *service.SavedProjectService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := service.NewSavedProjectService(store, pdf, nil).
		WithClock(func() time.Time { return time.Date(2025, 5, 4, 3, 2, 1, 0, time.UTC) })
	r := gin.New()
	New(svc).Register(r.Group("/api/v1/saved-projects"))
	return r, svc
}

func do(t *testing.T, r *gin.Engine, method, path, body, owner string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if owner != "" {
		req.Header.Set(auth.HeaderUserID, owner)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestSavedProjectsHandler_CRUD(t *testing.T) {
	r, svc := setup(t, stubPDF{}, repository.NewMemoryStore())
	saved, err := svc.Save(context.Background(), "alice", domain.SavedProject{TotalCost: 42, Plan: "premium"})
	require.NoError(t, err)
	base := "/api/v1/saved-projects"
	item := base + "/" + strconv.FormatInt(saved.ID, 10)

	w, env := do(t, r, http.MethodGet, base, "", "alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.OK)
	require.Len(t, env.Projects, 1)

	w, env = do(t, r, http.MethodGet, base, "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, env.Projects, "anonymous callers see the local owner's records")

	w, env = do(t, r, http.MethodGet, item, "", "alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 42.0, env.Project.TotalCost)

	w, env = do(t, r, http.MethodPatch, item, `{"name":"Kumara"}`, "alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kumara", env.Project.ClientName)

	w, env = do(t, r, http.MethodPatch, item, `{"name":""}`, "alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.OK)

	w, _ = do(t, r, http.MethodPatch, item, `not json`, "alice")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(t, r, http.MethodDelete, item, "", "bob")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = do(t, r, http.MethodDelete, item, "", "alice")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.OK)

	w, env = do(t, r, http.MethodGet, item, "", "alice")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "project not found", env.Error)
}

func TestSavedProjectsHandler_BadID(t *testing.T) {
	r, _ := setup(t, stubPDF{}, repository.NewMemoryStore())

	w, env := do(t, r, http.MethodGet, "/api/v1/saved-projects/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid project id", env.Error)
}

func TestSavedProjectsHandler_PDF(t *testing.T) {
	r, svc := setup(t, stubPDF{}, repository.NewMemoryStore())
	saved, err := svc.Save(context.Background(), auth.LocalOwner, domain.SavedProject{ClientName: "Silva"})
	require.NoError(t, err)

	w, _ := do(t, r, http.MethodGet, "/api/v1/saved-projects/"+strconv.FormatInt(saved.ID, 10)+"/pdf", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Cost_Audit_Silva.pdf")
	assert.Equal(t, "%PDF-1.7", w.Body.String())
}

func TestSavedProjectsHandler_PDFGatewayFailure(t *testing.T) {
	r, svc := setup(t, stubPDF{err: &estimate.ServerError{Operation: estimate.OpGeneratePDF, StatusCode: 500}}, repository.NewMemoryStore())
	saved, err := svc.Save(context.Background(), auth.LocalOwner, domain.SavedProject{})
	require.NoError(t, err)

	w, env := do(t, r, http.MethodGet, "/api/v1/saved-projects/"+strconv.FormatInt(saved.ID, 10)+"/pdf", "", "")
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Server error: 500", env.Error)
}

func TestSavedProjectsHandler_RenameUnsupported(t *testing.T) {
	store := repository.NewRemoteStore(estimate.NewClient("http://unused.invalid", estimate.Options{}))
	r, _ := setup(t, stubPDF{}, store)

	w, env := do(t, r, http.MethodPatch, "/api/v1/saved-projects/7", `{"name":"x"}`, "")
	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.False(t, env.OK)
}
