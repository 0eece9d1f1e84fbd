package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

// MemoryStore keeps each owner's collection as one serialized blob and
// rewrites it whole on every change, like a browser storage key.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) load(owner string) ([]domain.SavedProject, error) {
	return domain.DecodeList(s.blobs[owner])
}

func (s *MemoryStore) save(owner string, list []domain.SavedProject) error {
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode saved projects: %w", err)
	}
	s.blobs[owner] = data
	return nil
}

func (s *MemoryStore) Append(ctx context.Context, owner string, p domain.SavedProject) (domain.SavedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(owner)
	if err != nil {
		return domain.SavedProject{}, err
	}
	p.ID = uniqueID(list, p.ID)
	list = append(list, p)
	if err := s.save(owner, list); err != nil {
		return domain.SavedProject{}, err
	}
	return p, nil
}

func (s *MemoryStore) List(ctx context.Context, owner string) ([]domain.SavedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(owner)
	if err != nil {
		return nil, err
	}
	domain.SortBySavedAtDesc(list)
	return list, nil
}

func (s *MemoryStore) Get(ctx context.Context, owner string, id int64) (domain.SavedProject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(owner)
	if err != nil {
		return domain.SavedProject{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return domain.SavedProject{}, domain.ErrNotFound
	}
	return list[i], nil
}

func (s *MemoryStore) Rename(ctx context.Context, owner string, id int64, name string) (domain.SavedProject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SavedProject{}, domain.ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(owner)
	if err != nil {
		return domain.SavedProject{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return domain.SavedProject{}, domain.ErrNotFound
	}
	list[i].ClientName = name
	if err := s.save(owner, list); err != nil {
		return domain.SavedProject{}, err
	}
	return list[i], nil
}

func (s *MemoryStore) Delete(ctx context.Context, owner string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.load(owner)
	if err != nil {
		return err
	}
	i := indexOf(list, id)
	if i < 0 {
		return domain.ErrNotFound
	}
	list = append(list[:i], list[i+1:]...)
	return s.save(owner, list)
}
