package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"academy/internal/model"
)

// QuizRepository provides quiz definitions and user submissions.
type QuizRepository interface {
	// GetQuizByID retrieves a quiz definition, or nil if not found.
	GetQuizByID(ctx context.Context, quizID string) (*model.Quiz, error)
	// GetUserSubmissionForQuiz retrieves the user's latest submission for a
	// quiz, by submission time, or nil if the user never attempted it.
	GetUserSubmissionForQuiz(ctx context.Context, userID, quizID string) (*model.Submission, error)
}

type quizRepo struct {
	db *sql.DB
}

// NewQuizRepo creates a new QuizRepository
func NewQuizRepo(db *sql.DB) QuizRepository {
	return &quizRepo{db: db}
}

func (r *quizRepo) GetQuizByID(ctx context.Context, quizID string) (*model.Quiz, error) {
	query := `
		SELECT quiz_id, title, questions, settings, created_at
		FROM quizzes
		WHERE quiz_id = $1
	`
	var (
		q        model.Quiz
		settings []byte
	)
	err := r.db.QueryRowContext(ctx, query, quizID).Scan(&q.QuizID, &q.Title, &q.Questions, &settings, &q.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if len(settings) > 0 {
		q.Settings = &model.QuizSettings{}
		if err := json.Unmarshal(settings, q.Settings); err != nil {
			return nil, fmt.Errorf("failed to decode settings for quiz %s: %w", q.QuizID, err)
		}
	}
	return &q, nil
}

func (r *quizRepo) GetUserSubmissionForQuiz(ctx context.Context, userID, quizID string) (*model.Submission, error) {
	query := `
		SELECT submission_id, user_id, quiz_id, score, status, submitted_at
		FROM quiz_submissions
		WHERE user_id = $1 AND quiz_id = $2
		ORDER BY submitted_at DESC
		LIMIT 1
	`
	var (
		s     model.Submission
		score sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, query, userID, quizID).Scan(
		&s.SubmissionID,
		&s.UserID,
		&s.QuizID,
		&score,
		&s.Status,
		&s.SubmittedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if score.Valid {
		v := int(score.Int64)
		s.Score = &v
	}
	return &s, nil
}
