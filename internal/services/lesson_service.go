package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// CompletionResult is what a learner gets back after finishing a lesson.
type CompletionResult struct {
	PointsEarned int                  `json:"points_earned"`
	TotalPoints  int                  `json:"total_points"`
	Streak       int                  `json:"current_streak"`
	NewBadges    []models.EarnedBadge `json:"new_badges"`
	CardsAdded   int                  `json:"cards_added"`
}

// LessonService handles the lesson catalog and lesson completion
type LessonService interface {
	ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error)
	Lesson(ctx context.Context, id string) (*models.Lesson, error)
	CompleteLesson(ctx context.Context, userID, lessonID string, score, timeSpent int, mistakes []string) (*CompletionResult, error)
}

type lessonService struct {
	db     *db.DB
	badges *engine.BadgeEngine
	clock  clock.Clock
}

// NewLessonService creates a new LessonService
func NewLessonService(db *db.DB, badges *engine.BadgeEngine, clk clock.Clock) LessonService {
	return &lessonService{db: db, badges: badges, clock: clk}
}

func (s *lessonService) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	lessons, err := s.db.ListLessons(ctx, filter)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return lessons, nil
}

func (s *lessonService) Lesson(ctx context.Context, id string) (*models.Lesson, error) {
	lesson, err := s.db.LessonByID(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if lesson == nil {
		return nil, errors.NewNotFoundError("lesson", id)
	}
	return lesson, nil
}

// CompleteLesson applies one finished lesson to the learner's state: points,
// streak, weekly bucket, weak topics for mistakes, new vocabulary cards and
// any badges the update unlocked.
func (s *lessonService) CompleteLesson(ctx context.Context, userID, lessonID string, score, timeSpent int, mistakes []string) (*CompletionResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("completing lesson: user_id=%s lesson_id=%s score=%d", userID, lessonID, score)

	lesson, err := s.Lesson(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	profile, err := s.db.LearnerProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}

	now := s.clock.Now()
	result, err := engine.RecordLessonCompletion(profile, lessonID, score, timeSpent, now)
	if err != nil {
		return nil, err
	}

	for _, topic := range mistakes {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		engine.RecordTopicError(profile, topic, now)
	}

	cardsAdded, err := s.introduceVocabulary(ctx, userID, lesson, now)
	if err != nil {
		return nil, err
	}
	profile.CardCount += cardsAdded

	earned := s.badges.Evaluate(profile, now)
	for _, b := range earned {
		profile.Badges[b.ID] = b.EarnedAt
		log.Info("badge earned: user_id=%s badge=%s", userID, b.ID)
	}

	if err := s.db.SaveLearnerProfile(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &CompletionResult{
		PointsEarned: result.PointsEarned,
		TotalPoints:  profile.TotalPoints,
		Streak:       profile.CurrentStreak,
		NewBadges:    earned,
		CardsAdded:   cardsAdded,
	}, nil
}

// introduceVocabulary adds the lesson's vocabulary entries as review cards,
// skipping words the learner already has.
func (s *lessonService) introduceVocabulary(ctx context.Context, userID string, lesson *models.Lesson, now time.Time) (int, error) {
	log := logger.FromContext(ctx)

	added := 0
	for _, entry := range lesson.Vocabulary {
		word, translation, ok := strings.Cut(entry, " - ")
		if !ok {
			log.Warn("skipping malformed vocabulary entry: lesson_id=%s entry=%q", lesson.ID, entry)
			continue
		}
		existing, err := s.db.CardByWord(ctx, userID, word)
		if err != nil {
			return added, errors.NewInternalError(err)
		}
		if existing != nil {
			continue
		}
		card := models.VocabularyCard{
			ID:           uuid.NewString(),
			UserID:       userID,
			Word:         word,
			Translation:  translation,
			IntervalDays: 1,
			EaseFactor:   2.5,
			DueAt:        now,
			Difficulty:   models.DifficultyMedium,
			CreatedAt:    now,
		}
		if err := s.db.InsertCard(ctx, card); err != nil {
			return added, errors.NewInternalError(err)
		}
		added++
	}
	return added, nil
}
