package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/qazaqstep/qazaqstep/internal/catalog"
	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// PlacementOutcome is returned after a submitted placement test.
type PlacementOutcome struct {
	Record         models.PlacementRecord `json:"record"`
	Recommendation string                 `json:"recommendation"`
}

// PlacementService handles the level placement test
type PlacementService interface {
	Questions(ctx context.Context, userID string) ([]models.PlacementQuestion, error)
	Submit(ctx context.Context, userID string, answers map[string]int) (*PlacementOutcome, error)
	History(ctx context.Context, userID string) ([]models.PlacementRecord, error)
	Retake(ctx context.Context, userID string) error
}

type placementService struct {
	db    *db.DB
	clock clock.Clock
}

// NewPlacementService creates a new PlacementService
func NewPlacementService(db *db.DB, clk clock.Clock) PlacementService {
	return &placementService{db: db, clock: clk}
}

// Questions serves the question bank. A learner who already placed must
// explicitly retake before seeing it again.
func (s *placementService) Questions(ctx context.Context, userID string) ([]models.PlacementQuestion, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.PlacementCompleted {
		return nil, errors.NewAlreadyCompletedError(profile.Level)
	}
	return catalog.PlacementBank(), nil
}

func (s *placementService) Submit(ctx context.Context, userID string, answers map[string]int) (*PlacementOutcome, error) {
	log := logger.FromContext(ctx)

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.PlacementCompleted {
		return nil, errors.NewAlreadyCompletedError(profile.Level)
	}

	result := engine.EvaluatePlacement(catalog.PlacementBank(), answers)
	now := s.clock.Now()

	record := models.PlacementRecord{
		ID:              uuid.NewString(),
		UserID:          userID,
		Questions:       result.Questions,
		TotalQuestions:  result.TotalQuestions,
		CorrectAnswers:  result.CorrectAnswers,
		Score:           result.Score,
		DeterminedLevel: result.Level,
		CompletedAt:     now,
	}

	profile.Level = result.Level
	profile.PlacementCompleted = true

	if err := s.db.InsertPlacementRecord(ctx, record, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}
	log.Info("placement completed: user_id=%s level=%s score=%d", userID, result.Level, result.Score)

	return &PlacementOutcome{
		Record:         record,
		Recommendation: catalog.LevelRecommendation(result.Level),
	}, nil
}

func (s *placementService) History(ctx context.Context, userID string) ([]models.PlacementRecord, error) {
	records, err := s.db.PlacementRecords(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return records, nil
}

// Retake is a full reset: it discards the test history and clears the level
// and the completed flag so the learner starts from a blank placement.
func (s *placementService) Retake(ctx context.Context, userID string) error {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.db.DeletePlacementRecords(ctx, userID); err != nil {
		return errors.NewInternalError(err)
	}
	profile.Level = ""
	profile.PlacementCompleted = false
	if err := s.db.SaveLearnerProfile(ctx, profile); err != nil {
		return errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("placement reopened: user_id=%s", userID)
	return nil
}

func (s *placementService) profile(ctx context.Context, userID string) (*models.LearnerProfile, error) {
	profile, err := s.db.LearnerProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return profile, nil
}
