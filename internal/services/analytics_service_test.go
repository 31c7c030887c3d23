package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	apperrors "github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/models"
	"github.com/qazaqstep/qazaqstep/internal/services"
	"github.com/qazaqstep/qazaqstep/internal/testutil"
)

func TestRecordTopicErrorAccumulates(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	svc := services.NewAnalyticsService(database, clock.Fixed{T: testTime}, 2, 5)
	ctx := context.Background()

	weak, err := svc.RecordTopicError(ctx, userID, "verb endings")
	require.NoError(t, err)
	assert.Equal(t, 1, weak.ErrorCount)
	assert.True(t, weak.NeedsReview)

	weak, err = svc.RecordTopicError(ctx, userID, "verb endings")
	require.NoError(t, err)
	assert.Equal(t, 2, weak.ErrorCount)

	var appErr *apperrors.AppError
	_, err = svc.RecordTopicError(ctx, userID, "  ")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeInvalidInput, appErr.Code)
}

func TestWeakTopicsReport(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	svc := services.NewAnalyticsService(database, clock.Fixed{T: testTime}, 2, 5)
	ctx := context.Background()

	record := func(topic string, times int) {
		for i := 0; i < times; i++ {
			_, err := svc.RecordTopicError(ctx, userID, topic)
			require.NoError(t, err)
		}
	}
	record("verbs", 5)
	record("nouns", 3)
	record("grammar", 2)
	record("spelling", 1) // below the reporting threshold

	topics, err := svc.WeakTopics(ctx, userID)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	assert.Equal(t, "verbs", topics[0].Topic)
	assert.Equal(t, engine.PriorityHigh, topics[0].Priority)
	assert.Equal(t, "nouns", topics[1].Topic)
	assert.Equal(t, engine.PriorityMedium, topics[1].Priority)
	assert.Equal(t, "grammar", topics[2].Topic)
	assert.Equal(t, engine.PriorityLow, topics[2].Priority)
}

func TestLessonsToReviewMatchesWeakSkills(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "verbs-lesson", models.LevelA2, []string{"verbs", "grammar"}, nil)
	insertTestLesson(t, database, "colors-lesson", models.LevelA1, []string{"vocabulary"}, nil)
	svc := services.NewAnalyticsService(database, clock.Fixed{T: testTime}, 2, 5)
	ctx := context.Background()

	// No weak topics yet, nothing to review.
	lessons, err := svc.LessonsToReview(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, lessons)

	for i := 0; i < 2; i++ {
		_, err := svc.RecordTopicError(ctx, userID, "verbs")
		require.NoError(t, err)
	}

	lessons, err = svc.LessonsToReview(ctx, userID)
	require.NoError(t, err)
	require.Len(t, lessons, 1)
	assert.Equal(t, "verbs-lesson", lessons[0].ID)
}

func TestWeeklyProgressSnapshot(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, nil, nil)
	clk := clock.Fixed{T: testTime}
	lessons := newLessonService(t, database, clk)
	svc := services.NewAnalyticsService(database, clk, 2, 5)
	ctx := context.Background()

	snapshot, err := svc.WeeklyProgress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, engine.WeekKey(testTime), snapshot.Week)
	assert.Equal(t, 0, snapshot.LessonsCompleted)
	assert.False(t, snapshot.GoalReached)

	_, err = lessons.CompleteLesson(ctx, userID, "greetings", 90, 300, nil)
	require.NoError(t, err)

	snapshot, err = svc.WeeklyProgress(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, snapshot.LessonsCompleted)
	assert.Equal(t, 18, snapshot.PointsEarned)
	assert.Equal(t, 7, snapshot.WeeklyGoal)
}

func TestMonthlyStatsAggregatesCompletions(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, nil, nil)
	insertTestLesson(t, database, "numbers", models.LevelA1, nil, nil)
	ctx := context.Background()

	day1 := newLessonService(t, database, clock.Fixed{T: testTime})
	_, err := day1.CompleteLesson(ctx, userID, "greetings", 100, 600, nil)
	require.NoError(t, err)

	day2 := newLessonService(t, database, clock.Fixed{T: testTime.Add(24 * time.Hour)})
	_, err = day2.CompleteLesson(ctx, userID, "numbers", 80, 300, nil)
	require.NoError(t, err)

	svc := services.NewAnalyticsService(database, clock.Fixed{T: testTime}, 2, 5)
	snapshot, err := svc.MonthlyStats(ctx, userID, testTime.Year(), testTime.Month())
	require.NoError(t, err)
	assert.Equal(t, testTime.Format("2006-01"), snapshot.Month)
	assert.Equal(t, 2, snapshot.LessonsCompleted)
	assert.Equal(t, 36, snapshot.PointsEarned)
	assert.Equal(t, 90, snapshot.AverageScore)
	assert.Equal(t, 900, snapshot.TimeSpent)

	// A different month is empty.
	empty, err := svc.MonthlyStats(ctx, userID, testTime.Year()-1, testTime.Month())
	require.NoError(t, err)
	assert.Equal(t, 0, empty.LessonsCompleted)
}

func TestOverallSnapshot(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, nil, []string{"Сәлем - Hello"})
	clk := clock.Fixed{T: testTime}
	lessons := newLessonService(t, database, clk)
	svc := services.NewAnalyticsService(database, clk, 2, 5)
	ctx := context.Background()

	_, err := lessons.CompleteLesson(ctx, userID, "greetings", 90, 300, nil)
	require.NoError(t, err)

	overall, err := svc.Overall(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 18, overall.TotalPoints)
	assert.Equal(t, 1, overall.CurrentStreak)
	assert.Equal(t, 1, overall.CardCount)
	assert.Equal(t, 2, overall.BadgeCount, "first lesson and 90-average badges")
	assert.Equal(t, 1, overall.Stats.TotalLessonsCompleted)
	assert.Equal(t, 90, overall.Stats.AverageScore)
}
