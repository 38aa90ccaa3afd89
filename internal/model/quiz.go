package model

import (
	"encoding/json"
	"time"
)

// Quiz is a stored quiz definition. Questions are kept opaque here; only the
// grading services care about settings.
type Quiz struct {
	QuizID    string          `db:"quiz_id" json:"quiz_id"`
	Title     string          `db:"title" json:"title"`
	Questions json.RawMessage `db:"questions" json:"questions"`
	Settings  *QuizSettings   `json:"settings,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// QuizSettings configures grading for a quiz.
type QuizSettings struct {
	PassingScore *int `json:"passing_score,omitempty"`
}

// Submission statuses.
const (
	SubmissionStatusSubmitted = "submitted"
	SubmissionStatusGraded    = "graded"
)

// Submission is a user's attempt at a quiz. Score is nil until the attempt
// has been graded (auto-graded quizzes are scored immediately; free-text
// answers wait for manual grading).
type Submission struct {
	SubmissionID string    `db:"submission_id" json:"submission_id"`
	UserID       string    `db:"user_id" json:"user_id"`
	QuizID       string    `db:"quiz_id" json:"quiz_id"`
	Score        *int      `db:"score" json:"score"`
	Status       string    `db:"status" json:"status"`
	SubmittedAt  time.Time `db:"submitted_at" json:"submitted_at"`
}
