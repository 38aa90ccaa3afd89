package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"academy/internal/model"

	"github.com/rs/zerolog"
)

// WeekRepository provides the week and section read paths used by the
// grading service.
type WeekRepository interface {
	GetWeeksByCourseID(ctx context.Context, courseID string) ([]model.Week, error)
	GetSectionsByWeekID(ctx context.Context, weekID string) ([]model.Section, error)
}

type weekRepo struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewWeekRepo creates a new WeekRepository
func NewWeekRepo(db *sql.DB, logger zerolog.Logger) WeekRepository {
	return &weekRepo{db: db, logger: logger.With().Str("repo", "WeekRepository").Logger()}
}

func (r *weekRepo) GetWeeksByCourseID(ctx context.Context, courseID string) ([]model.Week, error) {
	query := `
		SELECT week_id, course_id, title, week_order
		FROM weeks
		WHERE course_id = $1
		ORDER BY week_order ASC
	`
	rows, err := r.db.QueryContext(ctx, query, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var weeks []model.Week
	for rows.Next() {
		var w model.Week
		if err := rows.Scan(&w.WeekID, &w.CourseID, &w.Title, &w.WeekOrder); err != nil {
			return nil, err
		}
		weeks = append(weeks, w)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(weeks) == 0 {
		return []model.Week{}, nil
	}
	return weeks, nil
}

func (r *weekRepo) GetSectionsByWeekID(ctx context.Context, weekID string) ([]model.Section, error) {
	query := `
		SELECT section_id, week_id, title, position, content
		FROM sections
		WHERE week_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.QueryContext(ctx, query, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []model.Section
	for rows.Next() {
		var (
			s       model.Section
			content []byte
		)
		if err := rows.Scan(&s.SectionID, &s.WeekID, &s.Title, &s.Order, &content); err != nil {
			return nil, err
		}
		// Authored content lives in a JSONB column; decode it into typed
		// blocks here so callers never see raw documents.
		if len(content) > 0 {
			if err := json.Unmarshal(content, &s.Content); err != nil {
				return nil, fmt.Errorf("failed to decode content for section %s: %w", s.SectionID, err)
			}
		}
		sections = append(sections, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(sections) == 0 {
		return []model.Section{}, nil
	}
	return sections, nil
}
