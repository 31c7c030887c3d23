package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

func (db *DB) InsertCard(ctx context.Context, c models.VocabularyCard) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting card: user_id=%s word=%s", c.UserID, c.Word)

	_, err := db.ExecContext(ctx, `
INSERT INTO vocabulary_cards (id, user_id, word, translation, pronunciation, interval_days,
    ease_factor, due_at, last_reviewed_at, repetition_count, difficulty, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, c.ID, c.UserID, c.Word, c.Translation, c.Pronunciation, c.IntervalDays,
		c.EaseFactor, c.DueAt, nullableTime(c.LastReviewedAt), c.RepetitionCount, c.Difficulty, c.CreatedAt)
	if err != nil {
		log.Error("failed to insert card: %v", err)
	}
	return err
}

// CardByID returns nil without error when no card matches.
func (db *DB) CardByID(ctx context.Context, userID, cardID string) (*models.VocabularyCard, error) {
	return db.cardBy(ctx, "id", userID, cardID)
}

// CardByWord returns nil without error when the user has no card for the word.
func (db *DB) CardByWord(ctx context.Context, userID, word string) (*models.VocabularyCard, error) {
	return db.cardBy(ctx, "word", userID, word)
}

func (db *DB) cardBy(ctx context.Context, column, userID, value string) (*models.VocabularyCard, error) {
	row := db.QueryRowContext(ctx, `
SELECT id, user_id, word, translation, pronunciation, interval_days, ease_factor,
       due_at, last_reviewed_at, repetition_count, difficulty, created_at
FROM vocabulary_cards
WHERE user_id = ? AND `+column+` = ?
`, userID, value)
	c, err := scanCard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		db.log.Error("failed to query card by %s: %v", column, err)
		return nil, err
	}
	return c, nil
}

func (db *DB) ListCards(ctx context.Context, userID string) ([]models.VocabularyCard, error) {
	return db.queryCards(ctx, `
SELECT id, user_id, word, translation, pronunciation, interval_days, ease_factor,
       due_at, last_reviewed_at, repetition_count, difficulty, created_at
FROM vocabulary_cards
WHERE user_id = ?
ORDER BY created_at
`, userID)
}

// DueCards returns cards whose review is due at or before now, oldest due first.
func (db *DB) DueCards(ctx context.Context, userID string, now time.Time, limit int) ([]models.VocabularyCard, error) {
	return db.queryCards(ctx, `
SELECT id, user_id, word, translation, pronunciation, interval_days, ease_factor,
       due_at, last_reviewed_at, repetition_count, difficulty, created_at
FROM vocabulary_cards
WHERE user_id = ? AND due_at <= ?
ORDER BY due_at
LIMIT ?
`, userID, now, limit)
}

func (db *DB) queryCards(ctx context.Context, query string, args ...interface{}) ([]models.VocabularyCard, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		db.log.Error("failed to query cards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.VocabularyCard
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *c)
	}
	return cards, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanCard(s scanner) (*models.VocabularyCard, error) {
	var c models.VocabularyCard
	var lastReviewed sql.NullTime
	err := s.Scan(&c.ID, &c.UserID, &c.Word, &c.Translation, &c.Pronunciation, &c.IntervalDays,
		&c.EaseFactor, &c.DueAt, &lastReviewed, &c.RepetitionCount, &c.Difficulty, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lastReviewed.Valid {
		c.LastReviewedAt = &lastReviewed.Time
	}
	return &c, nil
}

func (db *DB) DeleteCard(ctx context.Context, userID, cardID string) (bool, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM vocabulary_cards WHERE user_id = ? AND id = ?`, userID, cardID)
	if err != nil {
		db.log.Error("failed to delete card: %v", err)
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// SaveCardReview commits a reviewed card together with the learner profile
// that absorbed its points, in one transaction.
func (db *DB) SaveCardReview(ctx context.Context, c models.VocabularyCard, p *models.LearnerProfile) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("saving card review: user_id=%s card_id=%s", c.UserID, c.ID)

	return tx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
UPDATE vocabulary_cards
SET interval_days = ?, ease_factor = ?, due_at = ?, last_reviewed_at = ?,
    repetition_count = ?, difficulty = ?
WHERE user_id = ? AND id = ?
`, c.IntervalDays, c.EaseFactor, c.DueAt, nullableTime(c.LastReviewedAt),
			c.RepetitionCount, c.Difficulty, c.UserID, c.ID); err != nil {
			return err
		}
		return saveProfileTx(ctx, tx, p)
	})
}

func (db *DB) VocabularyStats(ctx context.Context, userID string) (*models.VocabularyStats, error) {
	var s models.VocabularyStats
	var avgInterval sql.NullFloat64
	err := db.QueryRowContext(ctx, `
SELECT COUNT(*),
       COALESCE(SUM(CASE WHEN difficulty = 'easy' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN difficulty = 'medium' THEN 1 ELSE 0 END), 0),
       COALESCE(SUM(CASE WHEN difficulty = 'hard' THEN 1 ELSE 0 END), 0),
       AVG(interval_days),
       COALESCE(SUM(repetition_count), 0)
FROM vocabulary_cards
WHERE user_id = ?
`, userID).Scan(&s.TotalCards, &s.EasyCards, &s.MediumCards, &s.HardCards, &avgInterval, &s.TotalReviews)
	if err != nil {
		db.log.Error("failed to query vocabulary stats: %v", err)
		return nil, err
	}
	if avgInterval.Valid {
		s.AverageInterval = int(avgInterval.Float64 + 0.5)
	}
	return &s, nil
}

// DueCardCounts returns, per user who opted into daily reminders, the number
// of cards due at or before now. Users with nothing due are omitted.
func (db *DB) DueCardCounts(ctx context.Context, now time.Time) (map[string]int, error) {
	rows, err := db.QueryContext(ctx, `
SELECT c.user_id, COUNT(*)
FROM vocabulary_cards c
JOIN users u ON u.id = c.user_id
WHERE u.daily_reminder = 1 AND c.due_at <= ?
GROUP BY c.user_id
`, now)
	if err != nil {
		db.log.Error("failed to query due card counts: %v", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var userID string
		var n int
		if err := rows.Scan(&userID, &n); err != nil {
			return nil, err
		}
		counts[userID] = n
	}
	return counts, rows.Err()
}
