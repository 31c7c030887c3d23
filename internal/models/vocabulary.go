package models

import "time"

// Difficulty labels derived from the most recent recall quality.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type VocabularyCard struct {
	ID              string     `json:"id"`
	UserID          string     `json:"-"`
	Word            string     `json:"word"`
	Translation     string     `json:"translation"`
	Pronunciation   string     `json:"pronunciation"`
	IntervalDays    int        `json:"interval"`
	EaseFactor      float64    `json:"ease"`
	DueAt           time.Time  `json:"next_review_date"`
	LastReviewedAt  *time.Time `json:"last_review_date"`
	RepetitionCount int        `json:"repetition_count"`
	Difficulty      string     `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type VocabularyStats struct {
	TotalCards      int `json:"total_cards"`
	EasyCards       int `json:"easy_cards"`
	MediumCards     int `json:"medium_cards"`
	HardCards       int `json:"hard_cards"`
	AverageInterval int `json:"average_interval"`
	TotalReviews    int `json:"total_reviews"`
}
