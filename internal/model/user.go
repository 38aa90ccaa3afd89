package model

import "time"

// User represents a student account.
type User struct {
	UserID     string            `db:"user_id" json:"user_id"`
	Name       string            `db:"name" json:"name"`
	Email      string            `db:"email" json:"email"`
	Enrollment *CohortEnrollment `json:"enrollment,omitempty"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time         `db:"updated_at" json:"updated_at"`
}

// CohortEnrollment records which intake a user belongs to and when they
// joined it. It is written once when registration completes and may later be
// corrected through enrollment events; the access and grading services only
// read it.
type CohortEnrollment struct {
	CohortID       string    `db:"cohort_id" json:"cohort_id"`
	EnrollmentDate time.Time `db:"enrolled_at" json:"enrollment_date"`
}
