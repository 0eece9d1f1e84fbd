package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

func TestRemoteStore_AppendAndList(t *testing.T) {
	saved := make(chan estimate.SaveProjectRequest, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/projects/save":
			var req estimate.SaveProjectRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			saved <- req
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "saved", "project_id": 17})
		case r.Method == http.MethodGet && r.URL.Path == "/projects/":
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{
					"id":           3,
					"project_type": "rental-homes",
					"input_json":   map[string]any{"floors": "G+2", "client_name": "Jayasuriya"},
					"total_cost":   4200000,
					"breakdown_json": map[string]any{
						"total_cost":         4200000,
						"pin_to_pin_details": []any{},
					},
					"created_at": "2025-02-01T09:30:00.123456",
				},
				{
					"id":             4,
					"project_type":   "dream-house",
					"input_json":     map[string]any{"floors": 1},
					"total_cost":     100,
					"breakdown_json": map[string]any{},
					"created_at":     "2025-02-03T09:30:00",
				},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	store := NewRemoteStore(estimate.NewClient(server.URL, estimate.Options{}))
	ctx := context.Background()

	rec := newRecord(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), 5000)
	got, err := store.Append(ctx, "ignored", rec)
	require.NoError(t, err)
	assert.Equal(t, int64(17), got.ID)
	assert.Equal(t, domain.SourceRemote, got.Source)

	req := <-saved
	assert.Equal(t, "dream-house", req.ProjectType)
	assert.Equal(t, 5000.0, req.TotalCost)
	assert.Equal(t, "G+1", req.InputJSON["floors"])
	assert.Equal(t, 5000.0, req.BreakdownJSON["total_cost"])

	list, err := store.List(ctx, "ignored")
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, int64(4), list[0].ID)
	assert.Equal(t, domain.Floors("1"), list[0].Floors)
	assert.Equal(t, int64(3), list[1].ID)
	assert.Equal(t, "Jayasuriya", list[1].ClientName)
	assert.Equal(t, 4200000.0, list[1].TotalCost)
	assert.Equal(t, domain.SourceRemote, list[1].Source)
	assert.Equal(t, time.Date(2025, 2, 1, 9, 30, 0, 123456000, time.UTC), list[1].SavedAt)

	one, err := store.Get(ctx, "ignored", 3)
	require.NoError(t, err)
	assert.Equal(t, "Jayasuriya", one.ClientName)

	_, err = store.Get(ctx, "ignored", 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoteStore_RenameUnsupported(t *testing.T) {
	store := NewRemoteStore(estimate.NewClient("http://unused.invalid", estimate.Options{}))
	_, err := store.Rename(context.Background(), "o", 1, "x")
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}

func TestRemoteStore_Delete(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, http.MethodDelete, r.Method)
		if r.URL.Path == "/projects/1" {
			_, _ = w.Write([]byte(`{"message":"deleted"}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	store := NewRemoteStore(estimate.NewClient(server.URL, estimate.Options{}))
	ctx := context.Background()

	require.NoError(t, store.Delete(ctx, "o", 1))
	assert.ErrorIs(t, store.Delete(ctx, "o", 2), domain.ErrNotFound)
	assert.Equal(t, int32(2), calls.Load())
}
