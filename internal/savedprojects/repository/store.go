package repository

import (
	"context"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

// Store persists saved projects per owner. List returns records newest first.
type Store interface {
	Append(ctx context.Context, owner string, p domain.SavedProject) (domain.SavedProject, error)
	List(ctx context.Context, owner string) ([]domain.SavedProject, error)
	Get(ctx context.Context, owner string, id int64) (domain.SavedProject, error)
	Rename(ctx context.Context, owner string, id int64, name string) (domain.SavedProject, error)
	Delete(ctx context.Context, owner string, id int64) error
}

// uniqueID bumps id until no record in list uses it. Two saves within the
// same millisecond would otherwise collide.
func uniqueID(list []domain.SavedProject, id int64) int64 {
	taken := make(map[int64]struct{}, len(list))
	for _, p := range list {
		taken[p.ID] = struct{}{}
	}
	for {
		if _, ok := taken[id]; !ok {
			return id
		}
		id++
	}
}

func indexOf(list []domain.SavedProject, id int64) int {
	for i, p := range list {
		if p.ID == id {
			return i
		}
	}
	return -1
}
