package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Gin_postgres_redis_lend_tool/app"
	"Gin_postgres_redis_lend_tool/audit"
	"Gin_postgres_redis_lend_tool/config"
	"Gin_postgres_redis_lend_tool/logger"
	"Gin_postgres_redis_lend_tool/routes"
)

func main() {
	config.LoadEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("config")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.LogPretty})

	application := app.MustNew(cfg, log)
	defer application.Close()

	if cfg.SeedDemo {
		if err := app.SeedDemo(ctx, application.Repo, log); err != nil {
			log.Fatal().Err(err).Msg("seed demo data")
		}
	}
	if err := app.BootstrapFirstAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword, application.Repo, log); err != nil {
		log.Error().Err(err).Msg("bootstrap admin")
	}

	auditor := audit.NewAuditor(application.Repo, log)
	jobs, err := audit.Schedule(cfg.AuditSchedule, auditor, 30*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("audit")
	}

	routes.RegisterRoutes(application.Router, application)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("port", cfg.Port).Str("auth_mode", cfg.AuthMode).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if jobs != nil {
		<-jobs.Stop().Done()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
