package repository

import (
	"context"
	"database/sql"
)

// ProgressRepository stores per-user section completion flags.
type ProgressRepository interface {
	// GetUserProgressForWeek returns the user's completion map for a week,
	// keyed by section ID. Sections the user never touched are absent from
	// the map, which is distinct from an explicit false.
	GetUserProgressForWeek(ctx context.Context, userID, weekID string) (map[string]bool, error)
	// UpsertSectionProgress records whether a user has completed a section.
	UpsertSectionProgress(ctx context.Context, userID, weekID, sectionID string, completed bool) error
}

type progressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new ProgressRepository
func NewProgressRepo(db *sql.DB) ProgressRepository {
	return &progressRepo{db: db}
}

func (r *progressRepo) GetUserProgressForWeek(ctx context.Context, userID, weekID string) (map[string]bool, error) {
	query := `
		SELECT section_id, completed
		FROM section_progress
		WHERE user_id = $1 AND week_id = $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, weekID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	progress := make(map[string]bool)
	for rows.Next() {
		var (
			sectionID string
			completed bool
		)
		if err := rows.Scan(&sectionID, &completed); err != nil {
			return nil, err
		}
		progress[sectionID] = completed
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *progressRepo) UpsertSectionProgress(ctx context.Context, userID, weekID, sectionID string, completed bool) error {
	query := `
		INSERT INTO section_progress (user_id, week_id, section_id, completed)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, section_id)
		DO UPDATE SET completed = EXCLUDED.completed, updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, userID, weekID, sectionID, completed)
	return err
}
