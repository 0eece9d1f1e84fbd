package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/repository"
)

type fakePDF struct {
	got  any
	err  error
	body string
}

func (f *fakePDF) GeneratePDF(ctx context.Context, body any) (io.ReadCloser, error) {
	f.got = body
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}

func savedCount(t *testing.T, m *metrics.Metrics, source string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "wizard_saved_projects_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "source" && lp.GetValue() == source {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSavedProjectService_Save(t *testing.T) {
	m := metrics.New()
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := NewSavedProjectService(repository.NewMemoryStore(), &fakePDF{}, m).WithClock(fixedClock(at))
	ctx := context.Background()

	saved, err := svc.Save(ctx, "alice", domain.SavedProject{TotalCost: 2500000, Plan: "classic"})
	require.NoError(t, err)

	assert.Equal(t, at.UnixMilli(), saved.ID)
	assert.Equal(t, domain.SchemaVersion, saved.SchemaVersion)
	assert.Equal(t, domain.SourceLocal, saved.Source)
	assert.Equal(t, domain.ProjectRef(at), saved.ProjectRef)
	assert.Equal(t, domain.DefaultClientName, saved.ClientName)
	assert.Equal(t, "01 Jun 2025", saved.GeneratedAt)
	assert.Equal(t, 1.0, savedCount(t, m, domain.SourceLocal))

	list, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2500000.0, list[0].TotalCost)
}

func TestSavedProjectService_ListEmpty(t *testing.T) {
	svc := NewSavedProjectService(repository.NewMemoryStore(), &fakePDF{}, nil)

	list, err := svc.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSavedProjectService_Rename(t *testing.T) {
	svc := NewSavedProjectService(repository.NewMemoryStore(), &fakePDF{}, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "alice", domain.SavedProject{})
	require.NoError(t, err)

	_, err = svc.Rename(ctx, "alice", saved.ID, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	renamed, err := svc.Rename(ctx, "alice", saved.ID, "Wickramasinghe")
	require.NoError(t, err)
	assert.Equal(t, "Wickramasinghe", renamed.ClientName)
}

func TestSavedProjectService_PDF(t *testing.T) {
	pdf := &fakePDF{body: "%PDF-1.4"}
	svc := NewSavedProjectService(repository.NewMemoryStore(), pdf, nil)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "alice", domain.SavedProject{ClientName: "Nimal Perera", TotalCost: 10})
	require.NoError(t, err)

	body, name, err := svc.PDF(ctx, "alice", saved.ID)
	require.NoError(t, err)
	defer body.Close()

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
	assert.Equal(t, "Cost_Audit_Nimal_Perera.pdf", name)

	sent, ok := pdf.got.(domain.SavedProject)
	require.True(t, ok)
	assert.Equal(t, saved.ID, sent.ID)

	_, _, err = svc.PDF(ctx, "alice", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pdf.err = errors.New("boom")
	_, _, err = svc.PDF(ctx, "alice", saved.ID)
	assert.EqualError(t, err, "boom")
}

func TestPDFFileName_FallsBackToReference(t *testing.T) {
	p := domain.SavedProject{ClientName: domain.DefaultClientName, ProjectRef: "AI-PNR-2025-123456"}
	assert.Equal(t, "Cost_Audit_AI-PNR-2025-123456.pdf", PDFFileName(p))
}
