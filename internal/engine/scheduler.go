package engine

import (
	"math"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

const minEaseFactor = 1.3

// Schedule is the outcome of one spaced-repetition review.
type Schedule struct {
	IntervalDays int
	EaseFactor   float64
	DueAt        time.Time
}

// ScheduleNext computes a card's next review using the SM-2 variant.
// quality: 0=blackout .. 5=perfect recall; below 3 counts as a failed recall,
// resetting the interval to one day and penalizing the ease factor. Past the
// two bootstrap steps (interval 0 and 1) growth is multiplicative by ease.
func ScheduleNext(currentInterval int, ease float64, quality int, now time.Time) (Schedule, error) {
	if quality < 0 || quality > 5 {
		return Schedule{}, errors.NewInvalidInputError("quality", "must be between 0 and 5")
	}

	if quality < 3 {
		return Schedule{
			IntervalDays: 1,
			EaseFactor:   math.Max(minEaseFactor, ease-0.2),
			DueAt:        now.Add(24 * time.Hour),
		}, nil
	}

	var interval int
	switch currentInterval {
	case 0:
		interval = 1
	case 1:
		interval = 3
	default:
		interval = int(math.Round(float64(currentInterval) * ease))
	}

	q := float64(quality)
	newEase := ease + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEase < minEaseFactor {
		newEase = minEaseFactor
	}

	return Schedule{
		IntervalDays: interval,
		EaseFactor:   newEase,
		DueAt:        now.Add(time.Duration(interval) * 24 * time.Hour),
	}, nil
}

// Difficulty maps the most recent recall quality onto a card difficulty label.
func Difficulty(quality int) string {
	switch {
	case quality == 5:
		return models.DifficultyEasy
	case quality <= 2:
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}
