package model

import "time"

// Course is one month of the program. MonthOrder is its 1-based position in
// the program timeline; months correspond 1:1 with courses.
type Course struct {
	CourseID    string          `db:"course_id" json:"course_id"`
	Title       string          `db:"title" json:"title"`
	Description string          `db:"description" json:"description"`
	MonthOrder  int             `db:"month_order" json:"month_order"`
	Settings    *CourseSettings `json:"settings,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// CourseSettings holds course-wide defaults.
type CourseSettings struct {
	DefaultPassingScore *int `json:"default_passing_score,omitempty"`
}

// Week groups the sections of one week of a course.
type Week struct {
	WeekID    string `db:"week_id" json:"week_id"`
	CourseID  string `db:"course_id" json:"course_id"`
	Title     string `db:"title" json:"title"`
	WeekOrder int    `db:"week_order" json:"week_order"`
}

// Section is a unit of study within a week. Its content is authored as a
// list of items whose rich-content blocks may embed quizzes.
type Section struct {
	SectionID string        `db:"section_id" json:"section_id"`
	WeekID    string        `db:"week_id" json:"week_id"`
	Title     string        `db:"title" json:"title"`
	Order     int           `db:"position" json:"order"`
	Content   []ContentItem `json:"content"`
}

// ContentItem is one authored item inside a section.
type ContentItem struct {
	Title       string             `json:"title"`
	RichContent []RichContentBlock `json:"rich_content"`
}

// RichContentBlock is a single block of section content. Type is one of
// "text", "video", "document" or "quiz"; only quiz blocks carry QuizContent.
type RichContentBlock struct {
	Type        string       `json:"type"`
	QuizContent *QuizContent `json:"quiz_content,omitempty"`
}

// BlockTypeQuiz marks blocks that reference a stored quiz.
const BlockTypeQuiz = "quiz"

// QuizContent links a quiz block to its stored quiz and carries any
// block-level setting overrides.
type QuizContent struct {
	DatabaseQuizID string        `json:"database_quiz_id"`
	Title          string        `json:"title"`
	Settings       *QuizSettings `json:"settings,omitempty"`
}
