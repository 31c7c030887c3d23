package reminder_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/models"
	"github.com/qazaqstep/qazaqstep/internal/reminder"
	"github.com/qazaqstep/qazaqstep/internal/testutil"
)

type recordingNotifier struct {
	calls map[string]int
}

func (n *recordingNotifier) NotifyDueCards(ctx context.Context, userID string, count int) error {
	n.calls[userID] = count
	return nil
}

func TestRunDigestNotifiesOptedInLearners(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, database.InsertUser(ctx, models.User{
		ID: "opted-in", Email: "a@b.kz", Username: "aigul", PasswordHash: "x", CreatedAt: now,
	}))
	require.NoError(t, database.InsertUser(ctx, models.User{
		ID: "opted-out", Email: "c@d.kz", Username: "dana", PasswordHash: "x", CreatedAt: now,
	}))

	// The second learner switched reminders off.
	optedOut, err := database.LearnerProfile(ctx, "opted-out")
	require.NoError(t, err)
	optedOut.Preferences.DailyReminder = false
	require.NoError(t, database.SaveLearnerProfile(ctx, optedOut))

	for i, userID := range []string{"opted-in", "opted-in", "opted-out"} {
		require.NoError(t, database.InsertCard(ctx, models.VocabularyCard{
			ID: "c" + string(rune('0'+i)), UserID: userID,
			Word: "w" + string(rune('0'+i)), Translation: "t",
			IntervalDays: 1, EaseFactor: 2.5,
			DueAt: now.Add(-time.Hour), Difficulty: models.DifficultyMedium, CreatedAt: now,
		}))
	}

	notifier := &recordingNotifier{calls: map[string]int{}}
	sched := reminder.New(database, notifier, clock.Fixed{T: now}, 8)

	require.NoError(t, sched.RunDigest(ctx))

	assert.Equal(t, map[string]int{"opted-in": 2}, notifier.calls)
}

func TestRunDigestSkipsFutureCards(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, database.InsertUser(ctx, models.User{
		ID: "u1", Email: "a@b.kz", Username: "aigul", PasswordHash: "x", CreatedAt: now,
	}))
	require.NoError(t, database.InsertCard(ctx, models.VocabularyCard{
		ID: "c1", UserID: "u1", Word: "w", Translation: "t",
		IntervalDays: 3, EaseFactor: 2.5,
		DueAt: now.Add(48 * time.Hour), Difficulty: models.DifficultyMedium, CreatedAt: now,
	}))

	notifier := &recordingNotifier{calls: map[string]int{}}
	sched := reminder.New(database, notifier, clock.Fixed{T: now}, 8)

	require.NoError(t, sched.RunDigest(ctx))
	assert.Empty(t, notifier.calls)
}
