package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qazaqstep/qazaqstep/internal/engine"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

var badgeTime = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)

func testCatalog() []models.Badge {
	return []models.Badge{
		{ID: "streak_7", Category: models.BadgeCategoryStreak, Requirement: "streak_7"},
		{ID: "points_100", Category: models.BadgeCategoryPoints, Requirement: "points_100"},
		{ID: "lessons_10", Category: models.BadgeCategoryLessons, Requirement: "lessons_10"},
		{ID: "accuracy_90", Category: models.BadgeCategoryAccuracy, Requirement: "accuracy_90"},
		{ID: "vocabulary_100", Category: models.BadgeCategoryVocabulary, Requirement: "vocabulary_100"},
		{ID: "special_first", Category: models.BadgeCategorySpecial, Requirement: "special_first"},
	}
}

func TestBadgeEngine_AwardsSatisfiedRules(t *testing.T) {
	eng := &engine.BadgeEngine{Catalog: testCatalog()}
	p := models.NewLearnerProfile("u1")
	p.CurrentStreak = 8
	p.TotalPoints = 150
	p.Stats.TotalLessonsCompleted = 3
	p.Stats.AverageScore = 85
	p.CardCount = 12

	earned := eng.Evaluate(p, badgeTime)

	require.Len(t, earned, 3)
	assert.Equal(t, "streak_7", earned[0].ID, "catalog order preserved")
	assert.Equal(t, "points_100", earned[1].ID)
	assert.Equal(t, "special_first", earned[2].ID)
	for _, b := range earned {
		assert.Equal(t, badgeTime, b.EarnedAt)
		assert.Contains(t, p.Badges, b.ID)
	}
}

func TestBadgeEngine_Idempotent(t *testing.T) {
	eng := &engine.BadgeEngine{Catalog: testCatalog()}
	p := models.NewLearnerProfile("u1")
	p.TotalPoints = 200
	p.Stats.TotalLessonsCompleted = 1

	first := eng.Evaluate(p, badgeTime)
	require.NotEmpty(t, first)

	second := eng.Evaluate(p, badgeTime.Add(time.Minute))
	assert.Empty(t, second, "no state change means no new awards")
	assert.Len(t, p.Badges, len(first), "earned set is stable")
}

func TestBadgeEngine_PointsThresholdCrossing(t *testing.T) {
	eng := &engine.BadgeEngine{Catalog: testCatalog()}
	p := models.NewLearnerProfile("u1")
	p.TotalPoints = 95
	p.Stats.TotalLessonsCompleted = 4

	// Pre-earn the first-lesson badge so only the threshold crossing shows up.
	eng.Evaluate(p, badgeTime)
	require.NotContains(t, p.Badges, "points_100")

	res, err := engine.RecordLessonCompletion(p, "lesson-5", 100, 300, day1)
	require.NoError(t, err)
	require.Equal(t, 20, res.PointsEarned)
	require.Equal(t, 115, p.TotalPoints)

	// The perfect score also lifts the average to 100, so the accuracy
	// badge lands in the same pass, after points_100 in catalog order.
	earned := eng.Evaluate(p, badgeTime)
	require.Len(t, earned, 2)
	assert.Equal(t, "points_100", earned[0].ID)
	assert.Equal(t, "accuracy_90", earned[1].ID)
}

func TestBadgeEngine_ExactThreshold(t *testing.T) {
	eng := &engine.BadgeEngine{Catalog: testCatalog()}
	p := models.NewLearnerProfile("u1")
	p.TotalPoints = 100

	earned := eng.Evaluate(p, badgeTime)
	require.Len(t, earned, 1)
	assert.Equal(t, "points_100", earned[0].ID, "threshold is inclusive")
}

func TestBadgeEngine_UnknownRequirementSkipped(t *testing.T) {
	var warned []string
	eng := &engine.BadgeEngine{
		Catalog: []models.Badge{
			{ID: "marathon_3", Requirement: "marathon_3"},
			{ID: "special_polyglot", Requirement: "special_polyglot"},
			{ID: "malformed", Requirement: "malformed"},
			{ID: "points_50", Requirement: "points_50"},
		},
		OnUnknownRequirement: func(b models.Badge) { warned = append(warned, b.ID) },
	}
	p := models.NewLearnerProfile("u1")
	p.TotalPoints = 60

	earned := eng.Evaluate(p, badgeTime)

	require.Len(t, earned, 1, "unknown categories never award")
	assert.Equal(t, "points_50", earned[0].ID)
	assert.Equal(t, []string{"marathon_3", "special_polyglot", "malformed"}, warned)
}
