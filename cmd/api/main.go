// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

// Command api is the entry point for the Devfolio HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (.env honored in dev).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire domain services and HTTP handlers.
//  7. Seed the initial administrator account.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/mquinde/devfolio/internal/api"
	"github.com/mquinde/devfolio/internal/core/message"
	"github.com/mquinde/devfolio/internal/core/project"
	"github.com/mquinde/devfolio/internal/core/skill"
	"github.com/mquinde/devfolio/internal/github"
	"github.com/mquinde/devfolio/internal/platform/config"
	"github.com/mquinde/devfolio/internal/platform/constants"
	"github.com/mquinde/devfolio/internal/platform/mail"
	"github.com/mquinde/devfolio/internal/platform/migration"
	pgstore "github.com/mquinde/devfolio/internal/platform/postgres"
	redisstore "github.com/mquinde/devfolio/internal/platform/redis"
	"github.com/mquinde/devfolio/internal/platform/respond"
	"github.com/mquinde/devfolio/internal/platform/sec"
	"github.com/mquinde/devfolio/internal/users/account"
	"github.com/mquinde/devfolio/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "devfolio"))
	slog.SetDefault(log)

	log.Info("[Devfolio] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A .env file is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Info("env_file_loaded")
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "devfolio"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Error payloads carry internal causes only outside production.
	respond.ExposeErrorCauses(cfg.IsDevelopment())

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Long-lived context for background workers (rate limiter janitor).
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Shared Infrastructure ──────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	var mailer mail.Mailer
	if cfg.SMTPHost != "" {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)
		log.Info("smtp_mailer_enabled", slog.String("host", cfg.SMTPHost))
	} else {
		mailer = mail.NewLogMailer(log)
		log.Warn("smtp_not_configured", slog.String("effect", "outbound mail is logged and dropped"))
	}

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := auth.NewUserRepository(pool)
	sessionRepository := auth.NewSessionRepository(pool)
	resetTokenRepository := auth.NewResetTokenRepository(rdb)
	authService := auth.NewService(
		userRepository, sessionRepository, resetTokenRepository,
		jwtSvc, mailer, cfg.FrontendURL, log,
	)
	authHandler := auth.NewHandler(authService)

	accountService := account.NewService(account.NewPostgresRepository(pool), sessionRepository, log)
	accountHandler := account.NewHandler(accountService)

	projectService := project.NewService(project.NewPostgresRepository(pool), log)
	projectHandler := project.NewHandler(projectService)

	messageService := message.NewService(message.NewPostgresRepository(pool), mailer, cfg.AdminEmail, log)
	messageHandler := message.NewHandler(messageService)

	skillService := skill.NewService(skill.NewPostgresRepository(pool), log)
	skillHandler := skill.NewHandler(skillService)

	githubHandler := github.NewHandler(github.NewClient(cfg.GithubUsername, cfg.GithubToken))

	// ── 9. Admin Seeding ──────────────────────────────────────────────────
	must(log, authService.EnsureAdmin(startupCtx, cfg.AdminSeedEmail, cfg.AdminSeedPassword), "seed admin account")

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Project:   projectHandler,
		Message:   messageHandler,
		Skill:     skillHandler,
		Github:    githubHandler,
	}

	server := api.NewServer(appCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
