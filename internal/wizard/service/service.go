package service

import (
	"context"
	"io"
	"time"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/logging"
	saved "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/domain"
	savedsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/service"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/domain"
)

// Estimator computes a cost estimate for a payload.
type Estimator interface {
	Estimate(ctx context.Context, p estimate.Payload) (*domain.EstimateResult, error)
}

// ProjectStore saves finalized projects and loads them back for replay.
type ProjectStore interface {
	Saver
	Get(ctx context.Context, owner string, id int64) (saved.SavedProject, error)
}

// WizardService drives wizard sessions and their calls to the estimator and
// the saved-project store.
type WizardService struct {
	sessions  *Registry
	estimator Estimator
	projects  ProjectStore
	pdf       savedsvc.PDFRenderer
}

// NewWizardService creates a new wizard service
func NewWizardService(sessions *Registry, estimator Estimator, projects ProjectStore, pdf savedsvc.PDFRenderer) *WizardService {
	return &WizardService{
		sessions:  sessions,
		estimator: estimator,
		projects:  projects,
		pdf:       pdf,
	}
}

// Start opens a new session.
func (s *WizardService) Start() (string, View) {
	return s.sessions.Create()
}

// View renders the session's current screen.
func (s *WizardService) View(id string) (View, error) {
	var v View
	err := s.sessions.With(id, func(c *Controller) error {
		v = c.View()
		return nil
	})
	return v, err
}

// Apply runs one command against the session.
func (s *WizardService) Apply(id string, cmd Command) (View, error) {
	var v View
	err := s.sessions.With(id, func(c *Controller) error {
		if err := c.Apply(cmd); err != nil {
			return err
		}
		v = c.View()
		return nil
	})
	return v, err
}

// Estimate runs the gateway call owned by the session's estimate screen. The
// session is not locked while the call is in flight; an answer that arrives
// after the user navigated away is discarded.
func (s *WizardService) Estimate(ctx context.Context, id string) (View, error) {
	logger := logging.NewLogger(ctx)

	var ticket Ticket
	if err := s.sessions.With(id, func(c *Controller) error {
		t, err := c.BeginEstimate()
		ticket = t
		return err
	}); err != nil {
		return View{}, err
	}

	start := time.Now()
	res, callErr := s.estimator.Estimate(ctx, ticket.Payload)
	if callErr != nil {
		logger.LogError("wizard.estimate", callErr)
	} else {
		logger.LogInfof("wizard.estimate", "session %s estimated in %s", id, time.Since(start))
	}

	var v View
	err := s.sessions.With(id, func(c *Controller) error {
		if !c.CompleteEstimate(ticket, res, callErr) {
			logger.LogWarnf("wizard.estimate", "discarded stale estimate for session %s (generation %d)", id, ticket.Generation)
		}
		v = c.View()
		return nil
	})
	return v, err
}

// Finalize saves the signed project for owner. The session stays locked
// across the save so the gate commit and the append are a single step.
func (s *WizardService) Finalize(ctx context.Context, id, owner string) (View, saved.SavedProject, error) {
	var (
		v   View
		rec saved.SavedProject
	)
	err := s.sessions.With(id, func(c *Controller) error {
		r, err := c.Finalize(ctx, s.projects, owner)
		if err != nil {
			return err
		}
		rec = r
		v = c.View()
		return nil
	})
	if err == nil {
		logging.NewLogger(ctx).LogInfof("wizard.finalize", "session %s saved project %d", id, rec.ID)
	}
	return v, rec, err
}

// OpenSaved replays a stored project read-only in the session.
func (s *WizardService) OpenSaved(ctx context.Context, id, owner string, projectID int64) (View, error) {
	if err := s.sessions.With(id, func(c *Controller) error {
		return c.require(domain.ScreenSaved)
	}); err != nil {
		return View{}, err
	}

	p, err := s.projects.Get(ctx, owner, projectID)
	if err != nil {
		return View{}, err
	}

	var v View
	err = s.sessions.With(id, func(c *Controller) error {
		if err := c.Restore(p); err != nil {
			return err
		}
		v = c.View()
		return nil
	})
	return v, err
}

// PDF renders the session's project. The caller must close the stream.
func (s *WizardService) PDF(ctx context.Context, id string) (io.ReadCloser, string, error) {
	var p saved.SavedProject
	if err := s.sessions.With(id, func(c *Controller) error {
		rec, err := c.PDFRecord()
		p = rec
		return err
	}); err != nil {
		return nil, "", err
	}

	if p.ID == 0 {
		p.Stamp(time.Now())
	}
	body, err := s.pdf.GeneratePDF(ctx, p)
	if err != nil {
		return nil, "", err
	}
	return body, savedsvc.PDFFileName(p), nil
}

// Close ends a session.
func (s *WizardService) Close(id string) error {
	if !s.sessions.Delete(id) {
		return domain.ErrSessionNotFound
	}
	return nil
}
