package dto

import "time"

// GradedItemDTO is one entry in a week's grade list. Section-completion
// entries carry progress_percent; quiz-score entries carry the score fields.
type GradedItemDTO struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Status string `json:"status"`

	SectionID       string `json:"section_id,omitempty"`
	ProgressPercent *int   `json:"progress_percent,omitempty"`

	QuizID       string `json:"quiz_id,omitempty"`
	Score        *int   `json:"score,omitempty"`
	MaxScore     *int   `json:"max_score,omitempty"`
	PassingScore *int   `json:"passing_score,omitempty"`
}

// WeekGradeDTO aggregates one week.
type WeekGradeDTO struct {
	WeekID              string          `json:"week_id"`
	WeekTitle           string          `json:"week_title"`
	WeekOrder           int             `json:"week_order"`
	Items               []GradedItemDTO `json:"items"`
	TotalItems          int             `json:"total_items"`
	CompletedItems      int             `json:"completed_items"`
	OverallWeekProgress int             `json:"overall_week_progress"`
}

// QuizScoreDTO is one scored quiz attempt in the course-wide list.
type QuizScoreDTO struct {
	QuizID       string    `json:"quiz_id"`
	Title        string    `json:"title"`
	Score        int       `json:"score"`
	PassingScore int       `json:"passing_score"`
	Passed       bool      `json:"passed"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// MonthlyProgressDTO is the course-level rollup.
type MonthlyProgressDTO struct {
	TotalItems      int            `json:"total_items"`
	CompletedItems  int            `json:"completed_items"`
	OverallProgress int            `json:"overall_progress"`
	QuizScores      []QuizScoreDTO `json:"quiz_scores"`
}

// CourseGradesResponseDTO is returned by the course grades endpoint.
type CourseGradesResponseDTO struct {
	WeeklyGrades    []WeekGradeDTO     `json:"weekly_grades"`
	MonthlyProgress MonthlyProgressDTO `json:"monthly_progress"`
}
