package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/config"
	httpapi "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/api/http"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/repository"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/storage/postgres"
)

// Store is the saved-project backend chosen by STORE_BACKEND together with
// the health checks of whatever it connected to.
type Store struct {
	Projects repository.Store
	Checks   map[string]httpapi.Check

	closers []func() error
}

// OpenStore connects the configured backend. The remote backend keeps
// records in the estimator's archive.
func OpenStore(ctx context.Context, cfg *config.Config, remote repository.RemoteArchive) (*Store, error) {
	s := &Store{Checks: map[string]httpapi.Check{}}

	switch cfg.Store.Backend {
	case config.StoreRedis:
		client, err := OpenRedis(ctx, &cfg.Redis)
		if err != nil {
			return nil, err
		}
		s.Projects = repository.NewRedisStore(client)
		s.Checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		s.closers = append(s.closers, client.Close)

	case config.StorePostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database, 5*time.Second)
		if err != nil {
			return nil, err
		}
		pg := repository.NewPostgresStore(db)
		if err := pg.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		s.Projects = pg
		s.Checks["db"] = pingDB(db)
		s.closers = append(s.closers, db.Close)

	case config.StoreRemote:
		s.Projects = repository.NewRemoteStore(remote)

	default:
		s.Projects = repository.NewMemoryStore()
	}

	log.Info().Str("backend", cfg.Store.Backend).Msg("saved-project store ready")
	return s, nil
}

// OpenRedis connects and pings the configured Redis server.
func OpenRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := client.Ping(pctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func pingDB(db *sql.DB) httpapi.Check {
	return func(ctx context.Context) error { return db.PingContext(ctx) }
}

// Close releases every connection the store opened.
func (s *Store) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
