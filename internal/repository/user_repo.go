package repository

import (
	"context"
	"database/sql"
	"time"

	"academy/internal/model"
)

// UserRepository defines the interface for interacting with user data
type UserRepository interface {
	// GetUserByID retrieves a user by ID, or nil if no such user exists.
	GetUserByID(ctx context.Context, userID string) (*model.User, error)
	// UpdateEnrollment sets a user's cohort enrollment.
	UpdateEnrollment(ctx context.Context, userID, cohortID string, enrolledAt time.Time) error
}

type userRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new UserRepository
func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	query := `
		SELECT user_id, name, email, cohort_id, enrolled_at, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`
	var (
		u          model.User
		cohortID   sql.NullString
		enrolledAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&cohortID,
		&enrolledAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	// A user without a cohort_id has no enrollment at all. A cohort_id
	// without an enrollment date is an inconsistent record; surface it as an
	// enrollment with a zero date so the access service can report it.
	if cohortID.Valid {
		u.Enrollment = &model.CohortEnrollment{CohortID: cohortID.String}
		if enrolledAt.Valid {
			u.Enrollment.EnrollmentDate = enrolledAt.Time
		}
	}
	return &u, nil
}

func (r *userRepo) UpdateEnrollment(ctx context.Context, userID, cohortID string, enrolledAt time.Time) error {
	query := `
		UPDATE users
		SET cohort_id = $1, enrolled_at = $2, updated_at = NOW()
		WHERE user_id = $3
	`
	res, err := r.db.ExecContext(ctx, query, cohortID, enrolledAt, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
