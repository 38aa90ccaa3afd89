package model

import "time"

// Graded-item kinds.
const (
	ItemKindSectionCompletion = "section_completion"
	ItemKindQuizScore         = "quiz_score"
)

// Graded-item statuses.
const (
	ItemStatusCompleted    = "completed"
	ItemStatusIncomplete   = "incomplete"
	ItemStatusNotStarted   = "not_started"
	ItemStatusPassed       = "passed"
	ItemStatusFailed       = "failed"
	ItemStatusPendingGrade = "pending_grade"
)

// GradedItem is one displayable slot in a user's grade view: either a
// section-completion entry or a quiz-score entry. Assembled fresh per
// request.
type GradedItem struct {
	Kind   string
	Title  string
	Status string

	// Section-completion fields.
	SectionID       string
	ProgressPercent int

	// Quiz-score fields. Score is nil while a submission awaits grading or
	// no attempt exists.
	QuizID       string
	Score        *int
	MaxScore     int
	PassingScore int
}

// QuizScore is a flat summary of a scored quiz attempt, listed course-wide.
type QuizScore struct {
	QuizID       string
	Title        string
	Score        int
	PassingScore int
	Passed       bool
	SubmittedAt  time.Time
}

// WeekGrade aggregates one week's graded items.
type WeekGrade struct {
	WeekID              string
	WeekTitle           string
	WeekOrder           int
	Items               []GradedItem
	TotalItems          int
	CompletedItems      int
	OverallWeekProgress int
}

// MonthlyProgress is the course-level rollup across all weeks.
type MonthlyProgress struct {
	TotalItems      int
	CompletedItems  int
	OverallProgress int
	QuizScores      []QuizScore
}

// CourseGrades is the full grade view for one user and course.
type CourseGrades struct {
	WeeklyGrades    []WeekGrade
	MonthlyProgress MonthlyProgress
}
