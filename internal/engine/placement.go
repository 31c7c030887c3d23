package engine

import (
	"math"

	"github.com/qazaqstep/qazaqstep/internal/models"
)

// PlacementResult is the evaluated outcome of a submitted placement test.
type PlacementResult struct {
	Score          int
	CorrectAnswers int
	TotalQuestions int
	Level          string
	Questions      []models.PlacementAnswer
}

// EvaluatePlacement scores a submitted answer set against the question bank,
// in bank order. A question absent from answers counts as incorrect.
func EvaluatePlacement(bank []models.PlacementQuestion, answers map[string]int) PlacementResult {
	res := PlacementResult{
		TotalQuestions: len(bank),
		Questions:      make([]models.PlacementAnswer, 0, len(bank)),
	}

	for _, q := range bank {
		ans := models.PlacementAnswer{
			QuestionID:    q.ID,
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.Correct,
		}
		if idx, ok := answers[q.ID]; ok {
			v := idx
			ans.UserAnswer = &v
			ans.IsCorrect = idx == q.Correct
		}
		if ans.IsCorrect {
			res.CorrectAnswers++
		}
		res.Questions = append(res.Questions, ans)
	}

	if res.TotalQuestions > 0 {
		res.Score = int(math.Round(float64(res.CorrectAnswers) / float64(res.TotalQuestions) * 100))
	}
	res.Level = LevelForCorrectCount(res.CorrectAnswers, res.TotalQuestions)
	return res
}

// LevelForCorrectCount maps a correct-answer count onto a proficiency level.
// Cutoffs scale with the bank size; for the 15-question bank they fall at
// 4 (A0), 8 (A1) and 12 (A2), with everything above placing at B1.
func LevelForCorrectCount(correct, total int) string {
	if total <= 0 {
		return models.LevelA0
	}
	switch {
	case correct <= total*4/15:
		return models.LevelA0
	case correct <= total*8/15:
		return models.LevelA1
	case correct <= total*12/15:
		return models.LevelA2
	default:
		return models.LevelB1
	}
}
