package models

import "time"

// PlacementQuestion is reference data from the question bank. Correct holds
// the index of the right option and is never serialized to clients.
type PlacementQuestion struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"-"`
	Level    string   `json:"-"`
}

// PlacementAnswer records one question's outcome inside an immutable test
// snapshot. UserAnswer is nil when the learner skipped the question.
type PlacementAnswer struct {
	QuestionID    string   `json:"question_id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	UserAnswer    *int     `json:"user_answer"`
	IsCorrect     bool     `json:"is_correct"`
}

// PlacementRecord is the immutable snapshot of one submitted test.
type PlacementRecord struct {
	ID              string            `json:"id"`
	UserID          string            `json:"user_id"`
	Questions       []PlacementAnswer `json:"questions"`
	TotalQuestions  int               `json:"total_questions"`
	CorrectAnswers  int               `json:"correct_answers"`
	Score           int               `json:"score"`
	DeterminedLevel string            `json:"determined_level"`
	CompletedAt     time.Time         `json:"completed_at"`
}
