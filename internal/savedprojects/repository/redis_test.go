package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestRedisStore(t *testing.T) {
	client, _ := setupTestRedis(t)
	exerciseStore(t, NewRedisStore(client))
}

func TestRedisStore_ConcurrentAppends(t *testing.T) {
	client, _ := setupTestRedis(t)
	// Fewer writers than maxTxRetries so no append can exhaust its retries.
	exerciseConcurrentAppends(t, NewRedisStore(client), 8)
}

func TestRedisStore_DecodesLegacyBlob(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client)

	legacy := `[{"id":1700000000000,"project_id":"AI-PNR-2023-000000","client_name":"Silva",` +
		`"project_type":"rental-homes","plot_size":"30x40","floors":2,"breakdown":{"total_cost":5000000}}]`
	require.NoError(t, mr.Set(savedProjectsKey("legacy"), legacy))

	list, err := store.List(context.Background(), "legacy")
	require.NoError(t, err)
	require.Len(t, list, 1)

	p := list[0]
	assert.Equal(t, domain.SchemaVersion, p.SchemaVersion)
	assert.Equal(t, "classic", p.Plan)
	assert.Equal(t, "30x40", p.Dimensions)
	assert.Equal(t, domain.Floors("2"), p.Floors)
	assert.Equal(t, "AI-PNR-2023-000000", p.ProjectRef)
	assert.Equal(t, 5000000.0, p.TotalCost)
	assert.Equal(t, domain.SourceLocal, p.Source)
}

func TestRedisStore_CorruptBlob(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisStore(client)

	require.NoError(t, mr.Set(savedProjectsKey("broken"), "{not json"))
	_, err := store.List(context.Background(), "broken")
	assert.Error(t, err)
}
