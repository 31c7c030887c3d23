package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazaqstep/qazaqstep/internal/catalog"
	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/engine"
	apperrors "github.com/qazaqstep/qazaqstep/internal/errors"
	"github.com/qazaqstep/qazaqstep/internal/models"
	"github.com/qazaqstep/qazaqstep/internal/services"
	"github.com/qazaqstep/qazaqstep/internal/testutil"
)

func insertTestUser(t *testing.T, database *db.DB) string {
	t.Helper()
	user := models.User{
		ID:           uuid.NewString(),
		Email:        uuid.NewString() + "@example.kz",
		Username:     "u-" + uuid.NewString()[:8],
		PasswordHash: "x",
		CreatedAt:    testTime,
	}
	require.NoError(t, database.InsertUser(context.Background(), user))
	return user.ID
}

func insertTestLesson(t *testing.T, database *db.DB, id, level string, skills, vocabulary []string) {
	t.Helper()
	lesson := models.Lesson{
		ID:          id,
		Title:       "Lesson " + id,
		Level:       level,
		Duration:    15,
		GrammarText: "grammar",
		Example:     "example",
		Vocabulary:  vocabulary,
		Skills:      skills,
	}
	require.NoError(t, database.InsertLesson(context.Background(), lesson, 0))
}

func newLessonService(t *testing.T, database *db.DB, clk clock.Clock) services.LessonService {
	t.Helper()
	return services.NewLessonService(database, &engine.BadgeEngine{Catalog: catalog.Badges()}, clk)
}

func TestListLessonsFiltered(t *testing.T) {
	database := testutil.NewTestDB(t)
	insertTestLesson(t, database, "greetings", models.LevelA1, []string{"speaking"}, nil)
	insertTestLesson(t, database, "verbs", models.LevelA2, []string{"grammar"}, nil)
	svc := newLessonService(t, database, clock.Fixed{T: testTime})
	ctx := context.Background()

	all, err := svc.ListLessons(ctx, models.LessonFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	a2, err := svc.ListLessons(ctx, models.LessonFilter{Level: models.LevelA2})
	require.NoError(t, err)
	require.Len(t, a2, 1)
	assert.Equal(t, "verbs", a2[0].ID)

	grammar, err := svc.ListLessons(ctx, models.LessonFilter{Skill: "grammar"})
	require.NoError(t, err)
	require.Len(t, grammar, 1)
	assert.Equal(t, "verbs", grammar[0].ID)
}

func TestCompleteLessonUpdatesState(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, []string{"speaking"},
		[]string{"Сәлем - Hello", "Рақмет - Thank you"})
	svc := newLessonService(t, database, clock.Fixed{T: testTime})
	ctx := context.Background()

	result, err := svc.CompleteLesson(ctx, userID, "greetings", 85, 300, []string{"verb endings"})
	require.NoError(t, err)
	assert.Equal(t, 17, result.PointsEarned)
	assert.Equal(t, 17, result.TotalPoints)
	assert.Equal(t, 1, result.Streak)
	assert.Equal(t, 2, result.CardsAdded)

	// First completed lesson unlocks the starter badge.
	require.Len(t, result.NewBadges, 1)
	assert.Equal(t, "special_first", result.NewBadges[0].ID)

	profile, err := database.LearnerProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 17, profile.TotalPoints)
	assert.Equal(t, 1, profile.Stats.TotalLessonsCompleted)
	assert.Equal(t, 85, profile.Stats.AverageScore)
	assert.Equal(t, 2, profile.CardCount)
	assert.True(t, profile.HasBadge("special_first"))

	weak, ok := profile.WeakTopics["verb endings"]
	require.True(t, ok)
	assert.Equal(t, 1, weak.ErrorCount)

	week := engine.WeekKey(testTime)
	require.Contains(t, profile.WeeklyProgress, week)
	assert.Equal(t, 1, profile.WeeklyProgress[week].LessonsCompleted)
}

func TestCompleteLessonRejectsSameDayRepeat(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, nil, nil)
	svc := newLessonService(t, database, clock.Fixed{T: testTime})
	ctx := context.Background()

	_, err := svc.CompleteLesson(ctx, userID, "greetings", 80, 300, nil)
	require.NoError(t, err)

	_, err = svc.CompleteLesson(ctx, userID, "greetings", 90, 300, nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeDuplicateCompletion, appErr.Code)

	// State is unchanged after the rejected attempt.
	profile, err := database.LearnerProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, profile.Stats.TotalLessonsCompleted)
	assert.Equal(t, 16, profile.TotalPoints)
}

func TestCompleteLessonNextDayExtendsStreak(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, nil, nil)
	insertTestLesson(t, database, "numbers", models.LevelA1, nil, nil)
	ctx := context.Background()

	day1 := newLessonService(t, database, clock.Fixed{T: testTime})
	_, err := day1.CompleteLesson(ctx, userID, "greetings", 80, 300, nil)
	require.NoError(t, err)

	day2 := newLessonService(t, database, clock.Fixed{T: testTime.Add(24 * time.Hour)})
	result, err := day2.CompleteLesson(ctx, userID, "numbers", 80, 300, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak)
}

func TestCompleteLessonSkipsExistingCards(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	insertTestLesson(t, database, "greetings", models.LevelA1, nil,
		[]string{"Сәлем - Hello", "malformed entry"})
	ctx := context.Background()

	require.NoError(t, database.InsertCard(ctx, models.VocabularyCard{
		ID: uuid.NewString(), UserID: userID, Word: "Сәлем", Translation: "Hello",
		IntervalDays: 1, EaseFactor: 2.5, DueAt: testTime, Difficulty: models.DifficultyMedium,
		CreatedAt: testTime,
	}))

	svc := newLessonService(t, database, clock.Fixed{T: testTime})
	result, err := svc.CompleteLesson(ctx, userID, "greetings", 80, 300, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CardsAdded)
}

func TestCompleteUnknownLesson(t *testing.T) {
	database := testutil.NewTestDB(t)
	userID := insertTestUser(t, database)
	svc := newLessonService(t, database, clock.Fixed{T: testTime})

	_, err := svc.CompleteLesson(context.Background(), userID, "missing", 80, 300, nil)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
