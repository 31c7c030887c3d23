package services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// ReviewResult reports the outcome of one card review.
type ReviewResult struct {
	Card         *models.VocabularyCard `json:"card"`
	IsCorrect    bool                   `json:"is_correct"`
	PointsEarned int                    `json:"points_earned"`
	TotalPoints  int                    `json:"total_points"`
}

// DueCard is a card projected for a review prompt, with the answer withheld.
type DueCard struct {
	ID            string `json:"id"`
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Difficulty    string `json:"difficulty"`
}

// VocabularyService handles the learner's card collection and reviews
type VocabularyService interface {
	ListCards(ctx context.Context, userID string) ([]models.VocabularyCard, error)
	DueCards(ctx context.Context, userID string) ([]DueCard, error)
	AddCard(ctx context.Context, userID, word, translation, pronunciation string) (*models.VocabularyCard, error)
	ReviewCard(ctx context.Context, userID, cardID string, quality int) (*ReviewResult, error)
	DeleteCard(ctx context.Context, userID, cardID string) error
	Stats(ctx context.Context, userID string) (*models.VocabularyStats, error)
}

type vocabularyService struct {
	db           *db.DB
	clock        clock.Clock
	sessionLimit int
}

// NewVocabularyService creates a new VocabularyService. sessionLimit caps
// how many due cards one review session serves.
func NewVocabularyService(db *db.DB, clk clock.Clock, sessionLimit int) VocabularyService {
	return &vocabularyService{db: db, clock: clk, sessionLimit: sessionLimit}
}

func (s *vocabularyService) ListCards(ctx context.Context, userID string) ([]models.VocabularyCard, error) {
	cards, err := s.db.ListCards(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return cards, nil
}

func (s *vocabularyService) DueCards(ctx context.Context, userID string) ([]DueCard, error) {
	cards, err := s.db.DueCards(ctx, userID, s.clock.Now(), s.sessionLimit)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	due := make([]DueCard, 0, len(cards))
	for _, card := range cards {
		due = append(due, DueCard{
			ID:            card.ID,
			Word:          card.Word,
			Pronunciation: card.Pronunciation,
			Difficulty:    card.Difficulty,
		})
	}
	return due, nil
}

func (s *vocabularyService) AddCard(ctx context.Context, userID, word, translation, pronunciation string) (*models.VocabularyCard, error) {
	log := logger.FromContext(ctx)

	word = strings.TrimSpace(word)
	translation = strings.TrimSpace(translation)
	if word == "" {
		return nil, errors.NewInvalidInputError("word", "must not be empty")
	}
	if translation == "" {
		return nil, errors.NewInvalidInputError("translation", "must not be empty")
	}

	existing, err := s.db.CardByWord(ctx, userID, word)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("word already in collection")
	}

	now := s.clock.Now()
	card := models.VocabularyCard{
		ID:            uuid.NewString(),
		UserID:        userID,
		Word:          word,
		Translation:   translation,
		Pronunciation: strings.TrimSpace(pronunciation),
		IntervalDays:  1,
		EaseFactor:    2.5,
		DueAt:         now,
		Difficulty:    models.DifficultyMedium,
		CreatedAt:     now,
	}
	if err := s.db.InsertCard(ctx, card); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("card added: user_id=%s word=%s", userID, word)
	return &card, nil
}

// ReviewCard applies one recall to the card's schedule and credits review
// points for a correct answer. Quality of 3 or better counts as correct.
func (s *vocabularyService) ReviewCard(ctx context.Context, userID, cardID string, quality int) (*ReviewResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("reviewing card: user_id=%s card_id=%s quality=%d", userID, cardID, quality)

	card, err := s.db.CardByID(ctx, userID, cardID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if card == nil {
		return nil, errors.NewNotFoundError("card", cardID)
	}

	now := s.clock.Now()
	schedule, err := engine.ScheduleNext(card.IntervalDays, card.EaseFactor, quality, now)
	if err != nil {
		return nil, err
	}

	card.IntervalDays = schedule.IntervalDays
	card.EaseFactor = schedule.EaseFactor
	card.DueAt = schedule.DueAt
	card.LastReviewedAt = &now
	card.RepetitionCount++
	card.Difficulty = engine.Difficulty(quality)

	profile, err := s.db.LearnerProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	points := engine.RecordReviewPoints(profile, quality >= 3)

	if err := s.db.SaveCardReview(ctx, *card, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}

	return &ReviewResult{
		Card:         card,
		IsCorrect:    quality >= 3,
		PointsEarned: points,
		TotalPoints:  profile.TotalPoints,
	}, nil
}

func (s *vocabularyService) DeleteCard(ctx context.Context, userID, cardID string) error {
	deleted, err := s.db.DeleteCard(ctx, userID, cardID)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if !deleted {
		return errors.NewNotFoundError("card", cardID)
	}
	return nil
}

func (s *vocabularyService) Stats(ctx context.Context, userID string) (*models.VocabularyStats, error) {
	stats, err := s.db.VocabularyStats(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
