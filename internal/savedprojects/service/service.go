package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/logging"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/repository"
)

// PDFRenderer renders a flattened project as a PDF stream.
type PDFRenderer interface {
	GeneratePDF(ctx context.Context, body any) (io.ReadCloser, error)
}

// SavedProjectService handles saved-project business logic
type SavedProjectService struct {
	store   repository.Store
	pdf     PDFRenderer
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewSavedProjectService creates a new saved-project service
func NewSavedProjectService(store repository.Store, pdf PDFRenderer, m *metrics.Metrics) *SavedProjectService {
	return &SavedProjectService{
		store:   store,
		pdf:     pdf,
		metrics: m,
		now:     time.Now,
	}
}

// WithClock replaces the clock used to stamp new records.
func (s *SavedProjectService) WithClock(now func() time.Time) *SavedProjectService {
	s.now = now
	return s
}

// Save stamps p and appends it to the owner's collection.
func (s *SavedProjectService) Save(ctx context.Context, owner string, p domain.SavedProject) (domain.SavedProject, error) {
	p.Stamp(s.now())

	saved, err := s.store.Append(ctx, owner, p)
	if err != nil {
		logging.NewLogger(ctx).LogErrorf("save_project", "failed to append for owner %s: %v", owner, err)
		return domain.SavedProject{}, err
	}
	s.metrics.RecordSaved(saved.Source)
	logging.NewLogger(ctx).LogInfof("save_project", "saved project %d (%s)", saved.ID, saved.ProjectRef)
	return saved, nil
}

// List returns the owner's records, newest first
func (s *SavedProjectService) List(ctx context.Context, owner string) ([]domain.SavedProject, error) {
	list, err := s.store.List(ctx, owner)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []domain.SavedProject{}
	}
	return list, nil
}

func (s *SavedProjectService) Get(ctx context.Context, owner string, id int64) (domain.SavedProject, error) {
	return s.store.Get(ctx, owner, id)
}

// Rename changes the client name shown for a record
func (s *SavedProjectService) Rename(ctx context.Context, owner string, id int64, name string) (domain.SavedProject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.SavedProject{}, domain.ErrInvalidName
	}
	return s.store.Rename(ctx, owner, id, name)
}

func (s *SavedProjectService) Delete(ctx context.Context, owner string, id int64) error {
	return s.store.Delete(ctx, owner, id)
}

// PDF renders a saved record through the estimator and returns the stream
// with a download file name. The caller must close the stream.
func (s *SavedProjectService) PDF(ctx context.Context, owner string, id int64) (io.ReadCloser, string, error) {
	p, err := s.store.Get(ctx, owner, id)
	if err != nil {
		return nil, "", err
	}
	body, err := s.pdf.GeneratePDF(ctx, p)
	if err != nil {
		return nil, "", err
	}
	return body, PDFFileName(p), nil
}

// PDFFileName names the download after the client, or the project reference.
func PDFFileName(p domain.SavedProject) string {
	name := p.ClientName
	if name == "" || name == domain.DefaultClientName {
		name = p.ProjectRef
	}
	return fmt.Sprintf("Cost_Audit_%s.pdf", strings.ReplaceAll(name, " ", "_"))
}
