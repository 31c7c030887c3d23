// Package reminder sends a daily digest of due vocabulary cards to learners
// who opted in.
package reminder

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/logger"
)

// Notifier delivers one reminder to one learner.
type Notifier interface {
	NotifyDueCards(ctx context.Context, userID string, count int) error
}

// LogNotifier writes reminders to the log. It stands in until a push or
// email channel is configured.
type LogNotifier struct{}

func (LogNotifier) NotifyDueCards(ctx context.Context, userID string, count int) error {
	logger.FromContext(ctx).Info("reminder: user_id=%s has %d cards due", userID, count)
	return nil
}

// Scheduler runs the digest once per day at the configured hour. It checks
// hourly so a restart never skips the whole day.
type Scheduler struct {
	db        *db.DB
	scheduler *gocron.Scheduler
	notifier  Notifier
	clock     clock.Clock
	hour      int
	log       *logger.Logger

	lastRun string // day key of the last delivered digest
}

func New(database *db.DB, notifier Notifier, clk clock.Clock, hour int) *Scheduler {
	return &Scheduler{
		db:        database,
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		clock:     clk,
		hour:      hour,
		log:       logger.Default().WithPrefix("reminder"),
	}
}

func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.tick)
	s.scheduler.StartAsync()
	s.log.Info("reminder scheduler started, digest hour %d", s.hour)
}

func (s *Scheduler) Stop() {
	s.scheduler.Stop()
	s.log.Info("reminder scheduler stopped")
}

func (s *Scheduler) tick() {
	now := s.clock.Now()
	if now.Hour() < s.hour {
		return
	}
	day := now.Format("2006-01-02")
	if day == s.lastRun {
		return
	}
	s.lastRun = day

	ctx := logger.NewContext(context.Background(), s.log)
	if err := s.RunDigest(ctx); err != nil {
		s.log.Error("digest run failed: %v", err)
	}
}

// RunDigest delivers one reminder per opted-in learner with due cards.
func (s *Scheduler) RunDigest(ctx context.Context) error {
	counts, err := s.db.DueCardCounts(ctx, s.clock.Now())
	if err != nil {
		return err
	}
	s.log.Debug("digest: %d learners with due cards", len(counts))

	for userID, count := range counts {
		if err := s.notifier.NotifyDueCards(ctx, userID, count); err != nil {
			s.log.Warn("failed to notify user %s: %v", userID, err)
		}
	}
	return nil
}
