package models

import "time"

// Badge requirement categories. The requirement string is "<category>_<value>",
// e.g. "streak_7" or "points_100".
const (
	BadgeCategoryStreak     = "streak"
	BadgeCategoryPoints     = "points"
	BadgeCategoryLessons    = "lessons"
	BadgeCategoryAccuracy   = "accuracy"
	BadgeCategoryVocabulary = "vocabulary"
	BadgeCategorySpecial    = "special"
)

// Badge is static catalog reference data, seeded once and read-only.
type Badge struct {
	ID          string `json:"badge_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Requirement string `json:"requirement"`
	Rarity      string `json:"rarity"`
}

// EarnedBadge pairs a catalog badge with the moment a learner earned it.
type EarnedBadge struct {
	Badge
	EarnedAt time.Time `json:"earned_at"`
}
