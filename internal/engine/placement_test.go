package engine_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

func testBank(size int) []models.PlacementQuestion {
	bank := make([]models.PlacementQuestion, 0, size)
	for i := 0; i < size; i++ {
		bank = append(bank, models.PlacementQuestion{
			ID:       fmt.Sprintf("q%d", i+1),
			Question: fmt.Sprintf("question %d", i+1),
			Options:  []string{"a", "b", "c", "d"},
			Correct:  i % 4,
		})
	}
	return bank
}

// answersFor builds a submission with exactly n correct answers, the rest wrong.
func answersFor(bank []models.PlacementQuestion, n int) map[string]int {
	answers := make(map[string]int, len(bank))
	for i, q := range bank {
		if i < n {
			answers[q.ID] = q.Correct
		} else {
			answers[q.ID] = (q.Correct + 1) % len(q.Options)
		}
	}
	return answers
}

func TestEvaluatePlacement_LevelThresholds(t *testing.T) {
	bank := testBank(15)

	tests := []struct {
		correct int
		level   string
	}{
		{0, models.LevelA0},
		{4, models.LevelA0},
		{5, models.LevelA1},
		{8, models.LevelA1},
		{9, models.LevelA2},
		{12, models.LevelA2},
		{13, models.LevelB1},
		{15, models.LevelB1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d correct", tt.correct), func(t *testing.T) {
			res := engine.EvaluatePlacement(bank, answersFor(bank, tt.correct))

			assert.Equal(t, tt.correct, res.CorrectAnswers)
			assert.Equal(t, tt.level, res.Level)
		})
	}
}

func TestEvaluatePlacement_Score(t *testing.T) {
	bank := testBank(15)

	res := engine.EvaluatePlacement(bank, answersFor(bank, 9))
	assert.Equal(t, 60, res.Score, "9/15 rounds to 60%")

	res = engine.EvaluatePlacement(bank, answersFor(bank, 10))
	assert.Equal(t, 67, res.Score, "10/15 rounds to 67%")
}

func TestEvaluatePlacement_MissingAnswersCountIncorrect(t *testing.T) {
	bank := testBank(15)
	answers := answersFor(bank, 15)
	delete(answers, "q1")
	delete(answers, "q2")

	res := engine.EvaluatePlacement(bank, answers)

	assert.Equal(t, 13, res.CorrectAnswers)
	assert.Equal(t, models.LevelB1, res.Level)

	require.Len(t, res.Questions, 15)
	assert.Nil(t, res.Questions[0].UserAnswer, "skipped question has no recorded answer")
	assert.False(t, res.Questions[0].IsCorrect)
	assert.NotNil(t, res.Questions[2].UserAnswer)
}

func TestEvaluatePlacement_PreservesBankOrder(t *testing.T) {
	bank := testBank(15)
	res := engine.EvaluatePlacement(bank, answersFor(bank, 7))

	require.Len(t, res.Questions, len(bank))
	for i, q := range bank {
		assert.Equal(t, q.ID, res.Questions[i].QuestionID)
	}
}

func TestLevelForCorrectCount_ScalesWithBankSize(t *testing.T) {
	// A 30-question bank keeps the proportional cutoffs: 8, 16, 24.
	assert.Equal(t, models.LevelA0, engine.LevelForCorrectCount(8, 30))
	assert.Equal(t, models.LevelA1, engine.LevelForCorrectCount(9, 30))
	assert.Equal(t, models.LevelA1, engine.LevelForCorrectCount(16, 30))
	assert.Equal(t, models.LevelA2, engine.LevelForCorrectCount(17, 30))
	assert.Equal(t, models.LevelA2, engine.LevelForCorrectCount(24, 30))
	assert.Equal(t, models.LevelB1, engine.LevelForCorrectCount(25, 30))
}

func TestEvaluatePlacement_EmptyBank(t *testing.T) {
	res := engine.EvaluatePlacement(nil, map[string]int{})

	assert.Equal(t, 0, res.Score)
	assert.Equal(t, models.LevelA0, res.Level)
	assert.Empty(t, res.Questions)
}
