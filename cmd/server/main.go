package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/api"
	"github.com/qazaqstep/qazaqstep/internal/auth"
	"github.com/qazaqstep/qazaqstep/internal/catalog"
	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/config"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
	"github.com/qazaqstep/qazaqstep/internal/reminder"
	"github.com/qazaqstep/qazaqstep/internal/seed"
	"github.com/qazaqstep/qazaqstep/internal/services"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("QazaqStep Server Starting")
	log.Info("===========================================")

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("review_session_limit=%d", cfg.ReviewSessionLimit)
	log.Debug("weak_topic_page_size=%d", cfg.WeakTopicPageSize)
	log.Debug("weak_topic_min_errors=%d", cfg.WeakTopicMinErrors)
	log.Debug("reminder_hour=%d", cfg.ReminderHour)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	ctx := logger.NewContext(context.Background(), log)
	if err := seed.Lessons(ctx, database); err != nil {
		log.Error("failed to seed lessons: %v", err)
		os.Exit(1)
	}

	clk := clock.System{}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	badgeEngine := &engine.BadgeEngine{
		Catalog: catalog.Badges(),
		OnUnknownRequirement: func(b models.Badge) {
			log.Warn("unknown badge requirement, skipping: badge=%s requirement=%s", b.ID, b.Requirement)
		},
	}

	srv := &api.Server{
		DB:         database,
		Clock:      clk,
		Tokens:     tokens,
		Auth:       services.NewAuthService(database, tokens, clk),
		Lessons:    services.NewLessonService(database, badgeEngine, clk),
		Vocabulary: services.NewVocabularyService(database, clk, cfg.ReviewSessionLimit),
		Placement:  services.NewPlacementService(database, clk),
		Badges:     services.NewBadgeService(database, badgeEngine, clk),
		Analytics:  services.NewAnalyticsService(database, clk, cfg.WeakTopicMinErrors, cfg.WeakTopicPageSize),
		StaticDir:  cfg.StaticDir,
	}

	reminders := reminder.New(database, reminder.LogNotifier{}, clk, cfg.ReminderHour)
	reminders.Start()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping reminder scheduler")
	reminders.Stop()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("===========================================")
	log.Info("QazaqStep Server Stopped")
	log.Info("===========================================")
}
