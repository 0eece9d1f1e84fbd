package service

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Sweeper evicts idle wizard sessions on a cron schedule.
type Sweeper struct {
	registry *Registry
	cron     *cron.Cron
}

func NewSweeper(registry *Registry) *Sweeper {
	return &Sweeper{
		registry: registry,
		cron:     cron.New(cron.WithSeconds()),
	}
}

// Start schedules the sweep. The schedule accepts the six-field cron format
// and descriptors such as "@every 5m".
func (s *Sweeper) Start(schedule string) error {
	_, err := s.cron.AddFunc(schedule, s.run)
	if err != nil {
		return fmt.Errorf("failed to schedule session sweep: %w", err)
	}

	log.Info().Str("schedule", schedule).Msg("session sweeper started")
	s.cron.Start()
	return nil
}

// Stop waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Sweeper) run() {
	if n := s.registry.Sweep(time.Now()); n > 0 {
		log.Info().Int("evicted", n).Int("active", s.registry.Len()).Msg("swept idle wizard sessions")
	}
}
