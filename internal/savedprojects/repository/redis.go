package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

const (
	// Redis key prefix; one key per owner holds the whole JSON list.
	savedProjectsKeyPrefix = "savedProjects:"

	maxTxRetries = 10
)

// RedisStore keeps each owner's collection under one key and rewrites it in
// a WATCH/MULTI transaction, so concurrent appends never drop a record.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func savedProjectsKey(owner string) string {
	return savedProjectsKeyPrefix + owner
}

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) load(ctx context.Context, getter stringGetter, key string) ([]domain.SavedProject, error) {
	raw, err := getter.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get saved projects: %w", err)
	}
	return domain.DecodeList(raw)
}

// update runs fn over the current list and writes the result back atomically.
func (s *RedisStore) update(ctx context.Context, owner string, fn func([]domain.SavedProject) ([]domain.SavedProject, error)) error {
	key := savedProjectsKey(owner)

	txf := func(tx *redis.Tx) error {
		list, err := s.load(ctx, tx, key)
		if err != nil {
			return err
		}
		next, err := fn(list)
		if err != nil {
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode saved projects: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return err
		}
		return nil
	}
	return fmt.Errorf("failed to update saved projects: too much contention on %s", key)
}

func (s *RedisStore) Append(ctx context.Context, owner string, p domain.SavedProject) (domain.SavedProject, error) {
	var saved domain.SavedProject
	err := s.update(ctx, owner, func(list []domain.SavedProject) ([]domain.SavedProject, error) {
		saved = p
		saved.ID = uniqueID(list, p.ID)
		return append(list, saved), nil
	})
	if err != nil {
		return domain.SavedProject{}, err
	}
	return saved, nil
}

func (s *RedisStore) List(ctx context.Context, owner string) ([]domain.SavedProject, error) {
	list, err := s.load(ctx, s.client, savedProjectsKey(owner))
	if err != nil {
		return nil, err
	}
	domain.SortBySavedAtDesc(list)
	return list, nil
}

func (s *RedisStore) Get(ctx context.Context, owner string, id int64) (domain.SavedProject, error) {
	list, err := s.load(ctx, s.client, savedProjectsKey(owner))
	if err != nil {
		return domain.SavedProject{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return domain.SavedProject{}, domain.ErrNotFound
	}
	return list[i], nil
}

func (s *RedisStore) Rename(ctx context.Context, owner string, id int64, name string) (domain.SavedProject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SavedProject{}, domain.ErrInvalidName
	}

	var renamed domain.SavedProject
	err := s.update(ctx, owner, func(list []domain.SavedProject) ([]domain.SavedProject, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		list[i].ClientName = name
		renamed = list[i]
		return list, nil
	})
	if err != nil {
		return domain.SavedProject{}, err
	}
	return renamed, nil
}

func (s *RedisStore) Delete(ctx context.Context, owner string, id int64) error {
	return s.update(ctx, owner, func(list []domain.SavedProject) ([]domain.SavedProject, error) {
		i := indexOf(list, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		return append(list[:i], list[i+1:]...), nil
	})
}
