package services

import (
	"context"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// BadgeService exposes the badge catalog and a learner's earned badges
type BadgeService interface {
	Catalog(ctx context.Context, userID string) ([]CatalogEntry, error)
	EarnedBadges(ctx context.Context, userID string) (*MyBadges, error)
	Award(ctx context.Context, userID, badgeID string) (*models.EarnedBadge, error)
}

// CatalogEntry is a catalog badge decorated with the learner's earned state.
type CatalogEntry struct {
	models.Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}

// MyBadges is the result of a fresh rule pass over the learner's state.
type MyBadges struct {
	Earned []models.EarnedBadge `json:"badges"`
	New    []string             `json:"new_badges"`
}

type badgeService struct {
	db     *db.DB
	badges *engine.BadgeEngine
	clock  clock.Clock
}

// NewBadgeService creates a new BadgeService
func NewBadgeService(db *db.DB, badges *engine.BadgeEngine, clk clock.Clock) BadgeService {
	return &badgeService{db: db, badges: badges, clock: clk}
}

// Catalog lists every badge with the learner's earned state.
func (s *badgeService) Catalog(ctx context.Context, userID string) ([]CatalogEntry, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	entries := make([]CatalogEntry, 0, len(s.badges.Catalog))
	for _, badge := range s.badges.Catalog {
		entry := CatalogEntry{Badge: badge}
		if at, ok := profile.Badges[badge.ID]; ok {
			entry.Earned = true
			earnedAt := at
			entry.EarnedAt = &earnedAt
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// EarnedBadges runs the rule engine against the learner's current state,
// persists anything newly earned, and returns the badges in catalog order.
func (s *badgeService) EarnedBadges(ctx context.Context, userID string) (*MyBadges, error) {
	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	fresh := s.badges.Evaluate(profile, s.clock.Now())
	newNames := make([]string, 0, len(fresh))
	for _, b := range fresh {
		profile.Badges[b.ID] = b.EarnedAt
		newNames = append(newNames, b.Name)
	}
	if len(fresh) > 0 {
		if err := s.db.SaveLearnerProfile(ctx, profile); err != nil {
			return nil, errors.NewInternalError(err)
		}
		logger.FromContext(ctx).Info("badges earned on check: user_id=%s count=%d", userID, len(fresh))
	}

	earned := make([]models.EarnedBadge, 0, len(profile.Badges))
	for _, badge := range s.badges.Catalog {
		if at, ok := profile.Badges[badge.ID]; ok {
			earned = append(earned, models.EarnedBadge{Badge: badge, EarnedAt: at})
		}
	}
	return &MyBadges{Earned: earned, New: newNames}, nil
}

// Award grants one specific badge if the learner currently meets its
// requirement. Earned badges are never granted twice.
func (s *badgeService) Award(ctx context.Context, userID, badgeID string) (*models.EarnedBadge, error) {
	var target *models.Badge
	for i := range s.badges.Catalog {
		if s.badges.Catalog[i].ID == badgeID {
			target = &s.badges.Catalog[i]
			break
		}
	}
	if target == nil {
		return nil, errors.NewNotFoundError("badge", badgeID)
	}

	profile, err := s.profile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile.HasBadge(badgeID) {
		return nil, errors.NewConflictError("badge already earned")
	}

	single := engine.BadgeEngine{
		Catalog:              []models.Badge{*target},
		OnUnknownRequirement: s.badges.OnUnknownRequirement,
	}
	earned := single.Evaluate(profile, s.clock.Now())
	if len(earned) == 0 {
		return nil, errors.NewConflictError("badge requirement not met")
	}

	profile.Badges[earned[0].ID] = earned[0].EarnedAt
	if err := s.db.SaveLearnerProfile(ctx, profile); err != nil {
		return nil, errors.NewInternalError(err)
	}
	logger.FromContext(ctx).Info("badge awarded: user_id=%s badge=%s", userID, badgeID)
	return &earned[0], nil
}

func (s *badgeService) profile(ctx context.Context, userID string) (*models.LearnerProfile, error) {
	profile, err := s.db.LearnerProfile(ctx, userID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if profile == nil {
		return nil, errors.NewNotFoundError("user", userID)
	}
	return profile, nil
}
