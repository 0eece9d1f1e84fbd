package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/GoSim-25-26J-441/cost-wizard-backend/config"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/api/http/routes"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth"
	authmw "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/auth/middleware"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/bootstrap"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/estimate"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/logging"
	"github.com/GoSim-25-26J-441/cost-wizard-backend/internal/metrics"
	savedsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/savedprojects/service"
	wizardsvc "github.com/GoSim-25-26J-441/cost-wizard-backend/internal/wizard/service"
)

const serviceName = "cost-wizard-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Setup(cfg.App.Environment, cfg.App.LogLevel)
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	client := estimate.NewClient(cfg.Estimator.BaseURL, estimate.Options{
		Timeout:   cfg.Estimator.Timeout,
		RateLimit: cfg.Estimator.RateLimit,
		Burst:     cfg.Estimator.Burst,
		Metrics:   m,
	})

	store, err := bootstrap.OpenStore(ctx, cfg, client)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open saved-project store")
	}
	defer store.Close()

	var verifier authmw.TokenVerifier
	firebaseAuth, err := auth.InitializeFirebase(ctx, &cfg.Firebase)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize firebase")
	}
	if firebaseAuth != nil {
		verifier = firebaseAuth
	} else {
		log.Warn().Msg("firebase not configured, saved projects are scoped by X-User-Id")
	}

	projects := savedsvc.NewSavedProjectService(store.Projects, client, m)
	sessions := wizardsvc.NewRegistry(wizardsvc.Options{
		AnalysisDelay: cfg.Wizard.AnalysisDelay,
		Metrics:       m,
	}, cfg.Wizard.SessionTTL)
	wizard := wizardsvc.NewWizardService(sessions, client, projects, client)

	sweeper := wizardsvc.NewSweeper(sessions)
	if err := sweeper.Start(cfg.Wizard.SweepSchedule); err != nil {
		log.Fatal().Err(err).Msg("failed to start session sweeper")
	}
	defer sweeper.Stop()

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		CORSOrigins: cfg.Server.CORSOrigins,
		Metrics:     m,
		Checks:      store.Checks,
		V1: routes.V1Deps{
			Wizard:        wizard,
			SavedProjects: projects,
			Verifier:      verifier,
		},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Str("store", cfg.Store.Backend).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
