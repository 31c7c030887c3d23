package models

import "time"

// Proficiency levels, ordered from complete beginner upward.
const (
	LevelA0 = "A0"
	LevelA1 = "A1"
	LevelA2 = "A2"
	LevelB1 = "B1"
	LevelB2 = "B2"
	LevelC1 = "C1"
)

// User carries account identity and credentials. Learning state lives on
// LearnerProfile, which is hydrated separately.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Preferences struct {
	DarkMode      bool `json:"dark_mode"`
	Notifications bool `json:"notifications"`
	DailyReminder bool `json:"daily_reminder"`
}

// DefaultPreferences returns the preferences assigned at registration.
func DefaultPreferences() Preferences {
	return Preferences{DarkMode: true, Notifications: true, DailyReminder: true}
}

type LearnerStats struct {
	TotalLessonsCompleted int        `json:"total_lessons_completed"`
	TotalPointsEarned     int        `json:"total_points_earned"`
	AverageScore          int        `json:"average_score"`
	TotalTimeSpent        float64    `json:"total_time_spent"` // minutes
	LastLoginAt           *time.Time `json:"last_login_at"`
}

type LessonCompletion struct {
	LessonID    string    `json:"lesson_id"`
	Score       int       `json:"score"`
	TimeSpent   int       `json:"time_spent"` // seconds
	CompletedAt time.Time `json:"completed_at"`
}

type WeekProgress struct {
	Week             string `json:"week"`
	LessonsCompleted int    `json:"lessons_completed"`
	PointsEarned     int    `json:"points_earned"`
}

// LearnerProfile is the per-learner state snapshot the engine operates on.
// Badge, weak-topic and weekly-progress collections are keyed maps so that
// existence checks and in-place updates stay O(1) within one mutation.
type LearnerProfile struct {
	UserID             string                   `json:"user_id"`
	Level              string                   `json:"level"` // empty until placement
	LearningGoal       string                   `json:"learning_goal"`
	PlacementCompleted bool                     `json:"placement_completed"`
	TotalPoints        int                      `json:"total_points"`
	CurrentStreak      int                      `json:"current_streak"`
	LongestStreak      int                      `json:"longest_streak"`
	LastActivityAt     *time.Time               `json:"last_activity_at"`
	WeeklyGoal         int                      `json:"weekly_goal"`
	WeeklyProgress     map[string]*WeekProgress `json:"weekly_progress"`
	Badges             map[string]time.Time     `json:"badges"`
	CardCount          int                      `json:"card_count"`
	WeakTopics         map[string]*WeakTopic    `json:"weak_topics"`
	Completions        []LessonCompletion       `json:"-"`
	Stats              LearnerStats             `json:"statistics"`
	Preferences        Preferences              `json:"preferences"`
}

// NewLearnerProfile returns the empty state created at registration.
func NewLearnerProfile(userID string) *LearnerProfile {
	return &LearnerProfile{
		UserID:         userID,
		LearningGoal:   "study",
		WeeklyGoal:     7,
		WeeklyProgress: make(map[string]*WeekProgress),
		Badges:         make(map[string]time.Time),
		WeakTopics:     make(map[string]*WeakTopic),
		Preferences:    DefaultPreferences(),
	}
}

func (p *LearnerProfile) HasBadge(badgeID string) bool {
	_, ok := p.Badges[badgeID]
	return ok
}
