package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

// InsertPlacementRecord stores the test snapshot and the profile it updated
// in one transaction.
func (db *DB) InsertPlacementRecord(ctx context.Context, r models.PlacementRecord, p *models.LearnerProfile) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting placement record: user_id=%s level=%s", r.UserID, r.DeterminedLevel)

	questions, err := json.Marshal(r.Questions)
	if err != nil {
		return err
	}

	return tx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO placement_tests (id, user_id, questions, total_questions, correct_answers,
    score, determined_level, completed_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`, r.ID, r.UserID, string(questions), r.TotalQuestions, r.CorrectAnswers,
			r.Score, r.DeterminedLevel, r.CompletedAt); err != nil {
			return err
		}
		return saveProfileTx(ctx, tx, p)
	})
}

// DeletePlacementRecords clears a user's test history so the placement can
// be retaken.
func (db *DB) DeletePlacementRecords(ctx context.Context, userID string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM placement_tests WHERE user_id = ?`, userID)
	if err != nil {
		db.log.Error("failed to delete placement records: %v", err)
	}
	return err
}

// PlacementRecords returns a user's test history, most recent first.
func (db *DB) PlacementRecords(ctx context.Context, userID string) ([]models.PlacementRecord, error) {
	rows, err := db.QueryContext(ctx, `
SELECT id, user_id, questions, total_questions, correct_answers, score, determined_level, completed_at
FROM placement_tests
WHERE user_id = ?
ORDER BY completed_at DESC
`, userID)
	if err != nil {
		db.log.Error("failed to query placement records: %v", err)
		return nil, err
	}
	defer rows.Close()

	var records []models.PlacementRecord
	for rows.Next() {
		var r models.PlacementRecord
		var questions string
		if err := rows.Scan(&r.ID, &r.UserID, &questions, &r.TotalQuestions, &r.CorrectAnswers,
			&r.Score, &r.DeterminedLevel, &r.CompletedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(questions), &r.Questions); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
