package estimate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
)

func TestClient_Estimate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/estimate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var p Payload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, 2, p.Floors)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"breakdown": {"total_cost": 2500000, "pin_to_pin_details": [{"category": "Civil", "item": "Foundation", "amount": 400000}]},
			"upgrade_suggestions": [{"tier": "Premium", "upgrade_cost": 350000, "description": "Marble"}]
		}`))
	}))
	defer server.Close()

	m := metrics.New()
	client := NewClient(server.URL+"/", Options{Metrics: m})

	res, err := client.Estimate(context.Background(), Payload{Floors: 2})
	require.NoError(t, err)
	assert.Equal(t, 2500000.0, res.Breakdown.TotalCost)
	require.Len(t, res.Breakdown.PinToPinDetails, 1)
	assert.Equal(t, "Foundation", res.Breakdown.PinToPinDetails[0].Item)
	require.Len(t, res.UpgradeSuggestions, 1)
	assert.Equal(t, 350000.0, res.UpgradeSuggestions[0].UpgradeCost)
}

func TestClient_Estimate_ValidationError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [
			{"loc": ["body", "floors"], "msg": "value is not a valid integer"},
			{"loc": ["body", "upgrades", 0], "msg": "field required"}
		]}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, Options{}).Estimate(context.Background(), Payload{})
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Equal(t,
		"Validation Error: body.floors - value is not a valid integer, body.upgrades.0 - field required",
		Message(err))
}

func TestClient_Estimate_ValidationStringDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": "plot too small"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, Options{}).Estimate(context.Background(), Payload{})
	assert.Equal(t, "Validation Error: plot too small", Message(err))
}

func TestClient_Estimate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail": "boom"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, Options{}).Estimate(context.Background(), Payload{})
	var se *ServerError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusInternalServerError, se.StatusCode)
	assert.Equal(t, "Server error: 500", Message(err))
	assert.False(t, IsValidation(err))
}

func TestClient_Estimate_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url, Options{}).Estimate(context.Background(), Payload{})
	require.Error(t, err)
	assert.Contains(t, Message(err), "estimator request failed")
}

func TestClient_Estimate_DecodeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, Options{}).Estimate(context.Background(), Payload{})
	require.Error(t, err)
	assert.Contains(t, Message(err), "failed to decode estimate")
}

func TestClient_RateLimiterHonoursContext(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{"breakdown": {"total_cost": 1}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{RateLimit: 0.001, Burst: 1})
	_, err := client.Estimate(context.Background(), Payload{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.Estimate(ctx, Payload{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "second call never reaches the estimator")
}

func TestClient_GeneratePDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate-pdf", r.URL.Path)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Client", body["client_name"])
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	rc, err := NewClient(server.URL, Options{}).GeneratePDF(context.Background(), map[string]any{"client_name": "Client"})
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 fake", string(data))
}

func TestClient_RemoteProjects(t *testing.T) {
	deleted := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/projects/":
			w.Write([]byte(`[{"id": 7, "project_type": "dream-house", "input_json": {"client_name": "Asha"}, "total_cost": 10, "breakdown_json": {}}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/projects/save":
			var req SaveProjectRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "rental-homes", req.ProjectType)
			w.Write([]byte(`{"message": "Project saved", "project_id": 12}`))
		case r.Method == http.MethodDelete:
			deleted <- r.URL.Path
			w.Write([]byte(`{"message": "Project deleted successfully"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, Options{})
	ctx := context.Background()

	list, err := client.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(7), list[0].ID)
	assert.Equal(t, "Asha", list[0].InputJSON["client_name"])

	id, err := client.SaveProject(ctx, SaveProjectRequest{ProjectType: "rental-homes"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	require.NoError(t, client.DeleteProject(ctx, 12))
	assert.Equal(t, "/projects/12", <-deleted)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "dial tcp: refused", Message(errors.New("dial tcp: refused")))
	assert.Equal(t, "Validation Error: Server error: 422", Message(&ValidationError{}))
}
