package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

const (
	maxLessonPoints = 20
	reviewPoints    = 5
)

// LessonResult summarizes one lesson-completion fold.
type LessonResult struct {
	PointsEarned int
	Week         *models.WeekProgress
}

// RecordLessonCompletion folds a completed lesson into the profile: points,
// cumulative statistics, streak and the current weekly bucket. The profile is
// left untouched when validation fails or the same lesson was already
// completed on the same calendar day.
func RecordLessonCompletion(p *models.LearnerProfile, lessonID string, score, timeSpentSeconds int, now time.Time) (LessonResult, error) {
	if score < 0 || score > 100 {
		return LessonResult{}, errors.NewInvalidInputError("score", "must be between 0 and 100")
	}
	if timeSpentSeconds < 0 {
		return LessonResult{}, errors.NewInvalidInputError("time_spent", "must not be negative")
	}
	for _, c := range p.Completions {
		if c.LessonID == lessonID && sameDay(c.CompletedAt, now) {
			return LessonResult{}, errors.NewDuplicateCompletionError(lessonID)
		}
	}

	points := PointsForScore(score)

	p.Completions = append(p.Completions, models.LessonCompletion{
		LessonID:    lessonID,
		Score:       score,
		TimeSpent:   timeSpentSeconds,
		CompletedAt: now,
	})
	p.TotalPoints += points
	p.Stats.TotalLessonsCompleted++
	p.Stats.TotalPointsEarned += points
	p.Stats.TotalTimeSpent += float64(timeSpentSeconds) / 60
	// Full recompute keeps the average exact under repeated rounding.
	p.Stats.AverageScore = averageScore(p.Completions)

	updateStreak(p, now)

	week := WeekKey(now)
	bucket, ok := p.WeeklyProgress[week]
	if !ok {
		bucket = &models.WeekProgress{Week: week}
		p.WeeklyProgress[week] = bucket
	}
	bucket.LessonsCompleted++
	bucket.PointsEarned += points

	return LessonResult{PointsEarned: points, Week: bucket}, nil
}

// PointsForScore converts a 0-100 lesson score into lesson points.
func PointsForScore(score int) int {
	return int(math.Round(float64(score) / 100 * maxLessonPoints))
}

// RecordReviewPoints awards the flat review bonus for a successful recall.
// Failed recalls earn nothing and leave the profile untouched.
func RecordReviewPoints(p *models.LearnerProfile, correct bool) int {
	if !correct {
		return 0
	}
	p.TotalPoints += reviewPoints
	p.Stats.TotalPointsEarned += reviewPoints
	return reviewPoints
}

// updateStreak applies the daily-streak rules: first activity starts at 1,
// consecutive days increment, a gap resets, same-day activity is neutral.
// The activity date is stamped on every call.
func updateStreak(p *models.LearnerProfile, now time.Time) {
	if p.LastActivityAt == nil {
		p.CurrentStreak = 1
	} else {
		switch days := wholeDaysBetween(*p.LastActivityAt, now); {
		case days == 1:
			p.CurrentStreak++
		case days > 1:
			p.CurrentStreak = 1
		}
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	t := now
	p.LastActivityAt = &t
}

// WeekKey returns the ISO week bucket key for t, e.g. "2026-W05".
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func wholeDaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func averageScore(completions []models.LessonCompletion) int {
	if len(completions) == 0 {
		return 0
	}
	sum := 0
	for _, c := range completions {
		sum += c.Score
	}
	return int(math.Round(float64(sum) / float64(len(completions))))
}
