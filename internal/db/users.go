package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

func (db *DB) InsertUser(ctx context.Context, u models.User) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting user: username=%s", u.Username)

	_, err := db.ExecContext(ctx, `
INSERT INTO users (id, email, username, password_hash, created_at)
VALUES (?, ?, ?, ?, ?)
`, u.ID, u.Email, u.Username, u.PasswordHash, u.CreatedAt)
	if err != nil {
		log.Error("failed to insert user: %v", err)
	}
	return err
}

func (db *DB) UserByID(ctx context.Context, id string) (*models.User, error) {
	return db.userBy(ctx, "id", id)
}

func (db *DB) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return db.userBy(ctx, "email", email)
}

func (db *DB) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return db.userBy(ctx, "username", username)
}

// userBy returns nil without error when no user matches.
func (db *DB) userBy(ctx context.Context, column, value string) (*models.User, error) {
	var u models.User
	err := db.QueryRowContext(ctx, `
SELECT id, email, username, password_hash, created_at
FROM users
WHERE `+column+` = ?
`, value).Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		db.log.Error("failed to query user by %s: %v", column, err)
		return nil, err
	}
	return &u, nil
}

func (db *DB) StampLastLogin(ctx context.Context, userID string, t time.Time) error {
	_, err := db.ExecContext(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, t, userID)
	if err != nil {
		db.log.Error("failed to stamp last login: %v", err)
	}
	return err
}

// LearnerProfile hydrates the full learner-state aggregate for one user.
// Returns nil without error when the user does not exist.
func (db *DB) LearnerProfile(ctx context.Context, userID string) (*models.LearnerProfile, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("hydrating learner profile: user_id=%s", userID)

	p := models.NewLearnerProfile(userID)
	var lastActivity, lastLogin sql.NullTime
	err := db.QueryRowContext(ctx, `
SELECT level, learning_goal, placement_completed, total_points, current_streak, longest_streak,
       last_activity_at, weekly_goal, total_lessons_completed, total_points_earned, average_score,
       total_time_spent, last_login_at, dark_mode, notifications, daily_reminder
FROM users
WHERE id = ?
`, userID).Scan(
		&p.Level, &p.LearningGoal, &p.PlacementCompleted, &p.TotalPoints, &p.CurrentStreak, &p.LongestStreak,
		&lastActivity, &p.WeeklyGoal, &p.Stats.TotalLessonsCompleted, &p.Stats.TotalPointsEarned, &p.Stats.AverageScore,
		&p.Stats.TotalTimeSpent, &lastLogin, &p.Preferences.DarkMode, &p.Preferences.Notifications, &p.Preferences.DailyReminder,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to query user row: %v", err)
		return nil, err
	}
	if lastActivity.Valid {
		p.LastActivityAt = &lastActivity.Time
	}
	if lastLogin.Valid {
		p.Stats.LastLoginAt = &lastLogin.Time
	}

	if err := db.loadCompletions(ctx, p); err != nil {
		return nil, err
	}
	if err := db.loadWeeklyProgress(ctx, p); err != nil {
		return nil, err
	}
	if err := db.loadBadges(ctx, p); err != nil {
		return nil, err
	}
	if err := db.loadWeakTopics(ctx, p); err != nil {
		return nil, err
	}
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vocabulary_cards WHERE user_id = ?`, userID).Scan(&p.CardCount); err != nil {
		log.Error("failed to count cards: %v", err)
		return nil, err
	}
	return p, nil
}

func (db *DB) loadCompletions(ctx context.Context, p *models.LearnerProfile) error {
	rows, err := db.QueryContext(ctx, `
SELECT lesson_id, score, time_spent, completed_at
FROM lesson_completions
WHERE user_id = ?
ORDER BY completed_at
`, p.UserID)
	if err != nil {
		db.log.Error("failed to query completions: %v", err)
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var c models.LessonCompletion
		if err := rows.Scan(&c.LessonID, &c.Score, &c.TimeSpent, &c.CompletedAt); err != nil {
			return err
		}
		p.Completions = append(p.Completions, c)
	}
	return rows.Err()
}

func (db *DB) loadWeeklyProgress(ctx context.Context, p *models.LearnerProfile) error {
	rows, err := db.QueryContext(ctx, `
SELECT week, lessons_completed, points_earned
FROM weekly_progress
WHERE user_id = ?
`, p.UserID)
	if err != nil {
		db.log.Error("failed to query weekly progress: %v", err)
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var w models.WeekProgress
		if err := rows.Scan(&w.Week, &w.LessonsCompleted, &w.PointsEarned); err != nil {
			return err
		}
		p.WeeklyProgress[w.Week] = &w
	}
	return rows.Err()
}

func (db *DB) loadBadges(ctx context.Context, p *models.LearnerProfile) error {
	rows, err := db.QueryContext(ctx, `
SELECT badge_id, earned_at
FROM user_badges
WHERE user_id = ?
`, p.UserID)
	if err != nil {
		db.log.Error("failed to query badges: %v", err)
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id string
		var earnedAt time.Time
		if err := rows.Scan(&id, &earnedAt); err != nil {
			return err
		}
		p.Badges[id] = earnedAt
	}
	return rows.Err()
}

func (db *DB) loadWeakTopics(ctx context.Context, p *models.LearnerProfile) error {
	rows, err := db.QueryContext(ctx, `
SELECT topic, error_count, last_error_at, needs_review
FROM weak_topics
WHERE user_id = ?
`, p.UserID)
	if err != nil {
		db.log.Error("failed to query weak topics: %v", err)
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var t models.WeakTopic
		if err := rows.Scan(&t.Topic, &t.ErrorCount, &t.LastErrorAt, &t.NeedsReview); err != nil {
			return err
		}
		p.WeakTopics[t.Topic] = &t
	}
	return rows.Err()
}

// SaveLearnerProfile commits a mutated learner aggregate in one transaction.
// Every derived field lands together or not at all.
func (db *DB) SaveLearnerProfile(ctx context.Context, p *models.LearnerProfile) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("saving learner profile: user_id=%s", p.UserID)

	return tx(ctx, db, func(tx *sql.Tx) error {
		return saveProfileTx(ctx, tx, p)
	})
}

func saveProfileTx(ctx context.Context, tx *sql.Tx, p *models.LearnerProfile) error {
	_, err := tx.ExecContext(ctx, `
UPDATE users
SET level = ?, learning_goal = ?, placement_completed = ?, total_points = ?,
    current_streak = ?, longest_streak = ?, last_activity_at = ?, weekly_goal = ?,
    total_lessons_completed = ?, total_points_earned = ?, average_score = ?,
    total_time_spent = ?, last_login_at = ?, dark_mode = ?, notifications = ?, daily_reminder = ?
WHERE id = ?
`, p.Level, p.LearningGoal, p.PlacementCompleted, p.TotalPoints,
		p.CurrentStreak, p.LongestStreak, nullableTime(p.LastActivityAt), p.WeeklyGoal,
		p.Stats.TotalLessonsCompleted, p.Stats.TotalPointsEarned, p.Stats.AverageScore,
		p.Stats.TotalTimeSpent, nullableTime(p.Stats.LastLoginAt), p.Preferences.DarkMode, p.Preferences.Notifications, p.Preferences.DailyReminder,
		p.UserID)
	if err != nil {
		return err
	}

	for _, w := range p.WeeklyProgress {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO weekly_progress (user_id, week, lessons_completed, points_earned)
VALUES (?, ?, ?, ?)
ON CONFLICT(user_id, week) DO UPDATE SET
    lessons_completed = excluded.lessons_completed,
    points_earned = excluded.points_earned
`, p.UserID, w.Week, w.LessonsCompleted, w.PointsEarned); err != nil {
			return err
		}
	}

	for badgeID, earnedAt := range p.Badges {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO user_badges (user_id, badge_id, earned_at)
VALUES (?, ?, ?)
`, p.UserID, badgeID, earnedAt); err != nil {
			return err
		}
	}

	for _, t := range p.WeakTopics {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO weak_topics (user_id, topic, error_count, last_error_at, needs_review)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(user_id, topic) DO UPDATE SET
    error_count = excluded.error_count,
    last_error_at = excluded.last_error_at,
    needs_review = excluded.needs_review
`, p.UserID, t.Topic, t.ErrorCount, t.LastErrorAt, t.NeedsReview); err != nil {
			return err
		}
	}

	for _, c := range p.Completions {
		if _, err := tx.ExecContext(ctx, `
INSERT OR IGNORE INTO lesson_completions (user_id, lesson_id, score, time_spent, completed_at)
VALUES (?, ?, ?, ?, ?)
`, p.UserID, c.LessonID, c.Score, c.TimeSpent, c.CompletedAt); err != nil {
			return err
		}
	}

	return nil
}

// CompletionsBetween returns a user's lesson completions in [from, to),
// oldest first.
func (db *DB) CompletionsBetween(ctx context.Context, userID string, from, to time.Time) ([]models.LessonCompletion, error) {
	rows, err := db.QueryContext(ctx, `
SELECT lesson_id, score, time_spent, completed_at
FROM lesson_completions
WHERE user_id = ? AND completed_at >= ? AND completed_at < ?
ORDER BY completed_at
`, userID, from, to)
	if err != nil {
		db.log.Error("failed to query completions in range: %v", err)
		return nil, err
	}
	defer rows.Close()

	var completions []models.LessonCompletion
	for rows.Next() {
		var c models.LessonCompletion
		if err := rows.Scan(&c.LessonID, &c.Score, &c.TimeSpent, &c.CompletedAt); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, rows.Err()
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
