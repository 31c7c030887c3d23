package services

import (
	"context"
	"strings"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// WeeklySnapshot pairs the current week's bucket with the learner's goal.
type WeeklySnapshot struct {
	Week             string `json:"week"`
	LessonsCompleted int    `json:"lessons_completed"`
	PointsEarned     int    `json:"points_earned"`
	WeeklyGoal       int    `json:"weekly_goal"`
	GoalReached      bool   `json:"goal_reached"`
}

// MonthlySnapshot aggregates one calendar month of completions.
type MonthlySnapshot struct {
	Month            string `json:"month"`
	LessonsCompleted int    `json:"lessons_completed"`
	PointsEarned     int    `json:"points_earned"`
	AverageScore     int    `json:"average_score"`
	TimeSpent        int    `json:"time_spent"` // seconds
}

// OverallSnapshot is the learner's lifetime view.
type OverallSnapshot struct {
	Level         string              `json:"level"`
	TotalPoints   int                 `json:"total_points"`
	CurrentStreak int                 `json:"current_streak"`
	LongestStreak int                 `json:"longest_streak"`
	CardCount     int                 `json:"card_count"`
	BadgeCount    int                 `json:"badge_count"`
	Stats         models.LearnerStats `json:"statistics"`
}

// AnalyticsService handles progress reporting and weak topic tracking
type AnalyticsService interface {
	WeakTopics(ctx context.Context, userID string) ([]engine.WeakTopicReport, error)
	RecordTopicError(ctx context.Context, userID, topic string) (*models.WeakTopic, error)
	LessonsToReview(ctx context.Context, userID string) ([]models.Lesson, error)
	WeeklyProgress(ctx context.Context, userID string) (*WeeklySnapshot, error)
	MonthlyStats(ctx context.Context, userID string, year int, month time.Month) (*MonthlySnapshot, error)
	Overall(ctx context.Context, userID string) (*OverallSnapshot, error)
}

type analyticsService struct {
	db        *db.DB
	clock     clock.Clock
	minErrors int
	pageSize  int
}

// NewAnalyticsService creates a new AnalyticsService. minErrors is the error
// count a topic needs before it is reported, pageSize caps the report length.
func NewAnalyticsService(db *db.DB, clk clock.Clock, minErrors, pageSize int) AnalyticsService {
	return &analyticsService{db: db, clock: clk, minErrors: minErrors, pageSize: pageSize}
}

func (s *analyticsService) WeakTopics(ctx context.Context, userID string) ([]engine.WeakTopicReport, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return engine.TopicsNeedingReview(profile, s.minErrors, s.pageSize), nil
}

func (s *analyticsService) RecordTopicError(ctx context.Context, userID, topic string) (*models.WeakTopic, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, errors.NewInvalidInputError("topic", "must not be empty")
	}

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	weak := engine.RecordTopicError(profile, topic, s.clock.Now())
	if err := s.db.SaveLearnerProfile(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Debug("topic error recorded: user_id=%s topic=%s count=%d", userID, topic, weak.ErrorCount)
	return weak, nil
}

// LessonsToReview suggests lessons whose skills cover the learner's weak
// topics, in curriculum order.
func (s *analyticsService) LessonsToReview(ctx context.Context, userID string) ([]models.Lesson, error) {
	reports, err := s.WeakTopics(ctx, userID)
	if err != nil {
		return nil, err
	}
	topics := make([]string, 0, len(reports))
	for _, r := range reports {
		topics = append(topics, r.Topic)
	}
	lessons, err := s.db.LessonsMatchingTopics(ctx, topics)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

func (s *analyticsService) WeeklyProgress(ctx context.Context, userID string) (*WeeklySnapshot, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	week := engine.WeekKey(s.clock.Now())
	snapshot := &WeeklySnapshot{Week: week, WeeklyGoal: profile.WeeklyGoal}
	if bucket, ok := profile.WeeklyProgress[week]; ok {
		snapshot.LessonsCompleted = bucket.LessonsCompleted
		snapshot.PointsEarned = bucket.PointsEarned
	}
	snapshot.GoalReached = snapshot.LessonsCompleted >= profile.WeeklyGoal
	return snapshot, nil
}

// MonthlyStats aggregates completions over one calendar month. Points are
// recomputed from scores with the same scale lessons award.
func (s *analyticsService) MonthlyStats(ctx context.Context, userID string, year int, month time.Month) (*MonthlySnapshot, error) {
	if _, err := s.profile(ctx, userID); err != nil {
		return nil, err
	}

	from := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	to := from.AddDate(0, 1, 0)
	completions, err := s.db.CompletionsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	snapshot := &MonthlySnapshot{Month: from.Format("2006-01")}
	totalScore := 0
	for _, c := range completions {
		snapshot.LessonsCompleted++
		snapshot.PointsEarned += engine.PointsForScore(c.Score)
		snapshot.TimeSpent += c.TimeSpent
		totalScore += c.Score
	}
	if snapshot.LessonsCompleted > 0 {
		snapshot.AverageScore = (totalScore + snapshot.LessonsCompleted/2) / snapshot.LessonsCompleted
	}
	return snapshot, nil
}

func (s *analyticsService) Overall(ctx context.Context, userID string) (*OverallSnapshot, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &OverallSnapshot{
		Level:         profile.Level,
		TotalPoints:   profile.TotalPoints,
		CurrentStreak: profile.CurrentStreak,
		LongestStreak: profile.LongestStreak,
		CardCount:     profile.CardCount,
		BadgeCount:    len(profile.Badges),
		Stats:         profile.Stats,
	}, nil
}

func (s *analyticsService) profile(ctx context.Context, userID string) (*models.LearnerProfile, error) {
	profile, err := s.db.LearnerProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return profile, nil
}
