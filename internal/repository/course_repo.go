package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"academy/internal/model"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	// ListCourses retrieves all published courses ordered by their position
	// in the program timeline.
	ListCourses(ctx context.Context) ([]model.Course, error)
	// GetCourseByID retrieves a course by its ID, or nil if not found.
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
}

type courseRepo struct {
	db *sql.DB
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(db *sql.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	query := `
		SELECT course_id, title, description, month_order, settings, created_at, updated_at
		FROM courses
		WHERE published = TRUE
		ORDER BY month_order ASC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []model.Course
	for rows.Next() {
		c, err := scanCourse(rows.Scan)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	// If no courses found, return an empty slice, not nil
	if len(courses) == 0 {
		return []model.Course{}, nil
	}
	return courses, nil
}

func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	query := `
		SELECT course_id, title, description, month_order, settings, created_at, updated_at
		FROM courses
		WHERE course_id = $1
	`
	c, err := scanCourse(func(dest ...any) error {
		return r.db.QueryRowContext(ctx, query, courseID).Scan(dest...)
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

// scanCourse normalizes a course row, decoding the JSONB settings column
// into an explicit struct at the repository boundary.
func scanCourse(scan func(dest ...any) error) (*model.Course, error) {
	var (
		c        model.Course
		settings []byte
	)
	if err := scan(&c.CourseID, &c.Title, &c.Description, &c.MonthOrder, &settings, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if len(settings) > 0 {
		c.Settings = &model.CourseSettings{}
		if err := json.Unmarshal(settings, c.Settings); err != nil {
			return nil, fmt.Errorf("failed to decode course settings for %s: %w", c.CourseID, err)
		}
	}
	return &c, nil
}
