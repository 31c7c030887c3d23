package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/qazaqstep/qazaqstep/internal/logger"
	"github.com/qazaqstep/qazaqstep/internal/models"
)

const lessonColumns = "id, title, level, duration, grammar_text, example, audio_url, test_questions, vocabulary, skills"

func (db *DB) InsertLesson(ctx context.Context, l models.Lesson, position int) error {
	questions, err := json.Marshal(l.TestQuestions)
	if err != nil {
		return err
	}
	vocabulary, err := json.Marshal(l.Vocabulary)
	if err != nil {
		return err
	}
	skills, err := json.Marshal(l.Skills)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
INSERT INTO lessons (id, title, level, duration, grammar_text, example, audio_url,
    test_questions, vocabulary, skills, position)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, l.ID, l.Title, l.Level, l.Duration, l.GrammarText, l.Example, l.AudioURL,
		string(questions), string(vocabulary), string(skills), position)
	if err != nil {
		db.log.Error("failed to insert lesson: %v", err)
	}
	return err
}

// ListLessons returns lessons in curriculum order, narrowed by any filter
// fields that are set.
func (db *DB) ListLessons(ctx context.Context, filter models.LessonFilter) ([]models.Lesson, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	builder := sq.Select(lessonColumns).From("lessons").OrderBy("position")
	if filter.Level != "" {
		builder = builder.Where(sq.Eq{"level": filter.Level})
	}
	if filter.Skill != "" {
		builder = builder.Where(sq.Like{"skills": `%"` + filter.Skill + `"%`})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Error("failed to build lesson query: %v", err)
		return nil, err
	}
	return db.queryLessons(ctx, query, args...)
}

// LessonByID returns nil without error when no lesson matches.
func (db *DB) LessonByID(ctx context.Context, id string) (*models.Lesson, error) {
	row := db.QueryRowContext(ctx, `SELECT `+lessonColumns+` FROM lessons WHERE id = ?`, id)
	l, err := scanLesson(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		db.log.Error("failed to query lesson: %v", err)
		return nil, err
	}
	return l, nil
}

// LessonsMatchingTopics returns lessons whose skills overlap the given
// topics, in curriculum order. An empty topic list yields no lessons.
func (db *DB) LessonsMatchingTopics(ctx context.Context, topics []string) ([]models.Lesson, error) {
	if len(topics) == 0 {
		return nil, nil
	}

	or := sq.Or{}
	for _, topic := range topics {
		or = append(or, sq.Like{"skills": `%"` + topic + `"%`})
	}
	query, args, err := sq.Select(lessonColumns).From("lessons").Where(or).OrderBy("position").ToSql()
	if err != nil {
		db.log.Error("failed to build topic match query: %v", err)
		return nil, err
	}
	return db.queryLessons(ctx, query, args...)
}

func (db *DB) CountLessons(ctx context.Context) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`).Scan(&n)
	if err != nil {
		db.log.Error("failed to count lessons: %v", err)
	}
	return n, err
}

func (db *DB) queryLessons(ctx context.Context, query string, args ...interface{}) ([]models.Lesson, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		db.log.Error("failed to query lessons: %v", err)
		return nil, err
	}
	defer rows.Close()

	var lessons []models.Lesson
	for rows.Next() {
		l, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, *l)
	}
	return lessons, rows.Err()
}

func scanLesson(s scanner) (*models.Lesson, error) {
	var l models.Lesson
	var questions, vocabulary, skills string
	err := s.Scan(&l.ID, &l.Title, &l.Level, &l.Duration, &l.GrammarText, &l.Example,
		&l.AudioURL, &questions, &vocabulary, &skills)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(questions), &l.TestQuestions); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(vocabulary), &l.Vocabulary); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(skills), &l.Skills); err != nil {
		return nil, err
	}
	return &l, nil
}
