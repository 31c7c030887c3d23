package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/models"
)

// BadgeEngine evaluates a badge catalog against learner state. The catalog is
// an explicitly constructed, immutable value; evaluation follows catalog
// order and a badge is never re-evaluated once earned.
type BadgeEngine struct {
	Catalog []models.Badge
	// OnUnknownRequirement is invoked for catalog entries whose requirement
	// category is not recognized. Such entries are skipped, never awarded.
	OnUnknownRequirement func(badge models.Badge)
}

// Evaluate awards every not-yet-earned badge whose requirement the profile
// satisfies and returns the newly earned set in catalog order. A second run
// with no state change in between returns nothing.
func (e *BadgeEngine) Evaluate(p *models.LearnerProfile, now time.Time) []models.EarnedBadge {
	var earned []models.EarnedBadge
	for _, b := range e.Catalog {
		if p.HasBadge(b.ID) {
			continue
		}
		met, known := requirementMet(p, b.Requirement)
		if !known {
			if e.OnUnknownRequirement != nil {
				e.OnUnknownRequirement(b)
			}
			continue
		}
		if !met {
			continue
		}
		p.Badges[b.ID] = now
		earned = append(earned, models.EarnedBadge{Badge: b, EarnedAt: now})
	}
	return earned
}

// requirementMet parses a "<category>_<value>" requirement and checks it
// against the profile. known is false for categories or values the engine
// does not understand.
func requirementMet(p *models.LearnerProfile, requirement string) (met, known bool) {
	kind, raw, ok := strings.Cut(requirement, "_")
	if !ok {
		return false, false
	}

	if kind == models.BadgeCategorySpecial {
		if raw == "first" {
			return p.Stats.TotalLessonsCompleted >= 1, true
		}
		return false, false
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return false, false
	}
	switch kind {
	case models.BadgeCategoryStreak:
		return p.CurrentStreak >= value, true
	case models.BadgeCategoryPoints:
		return p.TotalPoints >= value, true
	case models.BadgeCategoryLessons:
		return p.Stats.TotalLessonsCompleted >= value, true
	case models.BadgeCategoryAccuracy:
		return p.Stats.AverageScore >= value, true
	case models.BadgeCategoryVocabulary:
		return p.CardCount >= value, true
	}
	return false, false
}
