package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
)

// RemoteArchive is the part of the estimator client the remote store uses.
type RemoteArchive interface {
	ListProjects(ctx context.Context) ([]estimate.RemoteProject, error)
	SaveProject(ctx context.Context, req estimate.SaveProjectRequest) (int64, error)
	DeleteProject(ctx context.Context, id int64) error
}

// RemoteStore keeps saved projects in the estimator's own archive. The
// archive is shared and has no rename endpoint; owner is ignored.
type RemoteStore struct {
	archive RemoteArchive
}

func NewRemoteStore(archive RemoteArchive) *RemoteStore {
	return &RemoteStore{archive: archive}
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
}

func toMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *RemoteStore) Append(ctx context.Context, owner string, p domain.SavedProject) (domain.SavedProject, error) {
	input, err := toMap(p)
	if err != nil {
		return domain.SavedProject{}, fmt.Errorf("failed to encode saved project: %w", err)
	}
	breakdown, err := toMap(p.Breakdown)
	if err != nil {
		return domain.SavedProject{}, fmt.Errorf("failed to encode breakdown: %w", err)
	}

	id, err := s.archive.SaveProject(ctx, estimate.SaveProjectRequest{
		ProjectType:   string(p.ProjectType),
		InputJSON:     input,
		TotalCost:     p.TotalCost,
		BreakdownJSON: breakdown,
	})
	if err != nil {
		return domain.SavedProject{}, fmt.Errorf("failed to save remote project: %w", err)
	}
	p.ID = id
	p.Source = domain.SourceRemote
	return p, nil
}

func (s *RemoteStore) fromRemote(rp estimate.RemoteProject) (domain.SavedProject, error) {
	fields := map[string]any{}
	for k, v := range rp.InputJSON {
		fields[k] = v
	}
	if v, ok := fields["saved_at"].(string); ok {
		if _, err := time.Parse(time.RFC3339Nano, v); err != nil {
			delete(fields, "saved_at")
		}
	}
	fields["id"] = rp.ID
	fields["total_cost"] = rp.TotalCost
	if rp.ProjectType != "" {
		fields["project_type"] = rp.ProjectType
	}
	if _, ok := fields["breakdown"]; !ok && len(rp.BreakdownJSON) > 0 {
		fields["breakdown"] = rp.BreakdownJSON
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return domain.SavedProject{}, err
	}
	p, err := domain.Decode(raw)
	if err != nil {
		return domain.SavedProject{}, err
	}

	p.Source = domain.SourceRemote
	if rp.CreatedAt != "" {
		for _, layout := range createdAtLayouts {
			if t, err := time.Parse(layout, rp.CreatedAt); err == nil {
				p.SavedAt = t.UTC()
				break
			}
		}
	}
	return p, nil
}

func (s *RemoteStore) List(ctx context.Context, owner string) ([]domain.SavedProject, error) {
	remote, err := s.archive.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote projects: %w", err)
	}
	out := make([]domain.SavedProject, 0, len(remote))
	for _, rp := range remote {
		p, err := s.fromRemote(rp)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	domain.SortBySavedAtDesc(out)
	return out, nil
}

func (s *RemoteStore) Get(ctx context.Context, owner string, id int64) (domain.SavedProject, error) {
	list, err := s.List(ctx, owner)
	if err != nil {
		return domain.SavedProject{}, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return domain.SavedProject{}, domain.ErrNotFound
	}
	return list[i], nil
}

func (s *RemoteStore) Rename(ctx context.Context, owner string, id int64, name string) (domain.SavedProject, error) {
	return domain.SavedProject{}, fmt.Errorf("%w: the remote archive cannot rename", domain.ErrUnsupported)
}

func (s *RemoteStore) Delete(ctx context.Context, owner string, id int64) error {
	err := s.archive.DeleteProject(ctx, id)
	var se *estimate.ServerError
	if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete remote project: %w", err)
	}
	return nil
}
