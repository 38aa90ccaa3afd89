package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy/internal/cohort"
	"academy/internal/model"
	"academy/internal/repository"

	"github.com/rs/zerolog"
)

var ErrUserNotFound = errors.New("user not found")

// Enrollment messages returned alongside an all-locked course list. The
// course list itself always renders; these tell the student why nothing is
// open yet.
const (
	msgLoginRequired        = "Please log in or sign up to access course materials."
	msgNotEnrolled          = "You are not currently enrolled in a cohort. Please contact support if you believe this is an error."
	msgIncompleteEnrollment = "Your enrollment record is missing some information. Please contact support to complete your enrollment."
	msgUnparseableCohort    = "We had an issue understanding your cohort enrollment. Please contact support."
	msgFutureEnrollment     = "Your enrollment begins in an upcoming month. Courses will unlock when your access starts."
	msgResolutionFailed     = "We could not load your course access right now. Please try again later."
)

// AccessService resolves which courses a user may open, based on their
// cohort's start date and when they enrolled relative to it.
type AccessService interface {
	// ResolveCourseAccess returns an access status for every published
	// course. An empty userID means an anonymous caller. The only error it
	// returns for a known-shaped request is ErrUserNotFound; enrollment
	// problems degrade to an all-locked list with an explanatory message.
	ResolveCourseAccess(ctx context.Context, userID string) (*model.CourseAccessResult, error)
}

type accessService struct {
	userRepo   repository.UserRepository
	courseRepo repository.CourseRepository
	now        func() time.Time
	logger     zerolog.Logger
}

// NewAccessService creates a new AccessService. The clock is injected so
// tests can pin the current date.
func NewAccessService(userRepo repository.UserRepository, courseRepo repository.CourseRepository, now func() time.Time, logger zerolog.Logger) AccessService {
	if now == nil {
		now = time.Now
	}
	return &accessService{
		userRepo:   userRepo,
		courseRepo: courseRepo,
		now:        now,
		logger:     logger.With().Str("service", "AccessService").Logger(),
	}
}

func (s *accessService) ResolveCourseAccess(ctx context.Context, userID string) (*model.CourseAccessResult, error) {
	courses, err := s.courseRepo.ListCourses(ctx)
	if err != nil {
		// Without the course list there is nothing coherent to render.
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if userID == "" {
		return lockedResult(courses, msgLoginRequired), nil
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		// A store failure must not blank out the course list for a logged-in
		// user; degrade to all-locked and keep the original error in the logs.
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to load user during access resolution")
		return lockedResult(courses, msgResolutionFailed), nil
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	enr := user.Enrollment
	if enr == nil || enr.CohortID == "" {
		return lockedResult(courses, msgNotEnrolled), nil
	}
	if enr.EnrollmentDate.IsZero() {
		s.logger.Warn().Str("user_id", userID).Str("cohort_id", enr.CohortID).
			Msg("Enrollment record has a cohort but no enrollment date")
		return lockedResult(courses, msgIncompleteEnrollment), nil
	}

	intake, err := cohort.Parse(enr.CohortID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("cohort_id", enr.CohortID).
			Msg("Unparseable cohort identifier on enrollment")
		return lockedResult(courses, msgUnparseableCohort), nil
	}

	// Time of day never matters for month gating; compare dates only.
	today := dateOnly(s.now())
	enrolledOn := dateOnly(enr.EnrollmentDate)
	start := intake.StartDate()

	if start.After(today) {
		msg := fmt.Sprintf("Your %s has not started yet. Courses will unlock starting on %s.",
			intake.DisplayName(), start.Format("January 2, 2006"))
		return lockedResult(courses, msg), nil
	}

	currentMonth := intake.ProgramMonth(today)
	enrollmentMonth := intake.ProgramMonth(enrolledOn)

	// Users who enrolled before the cohort started still begin at month 1.
	// Users who joined late begin at the month they joined; months the
	// program already moved past stay locked (catch-up is handled by support,
	// not auto-unlocked).
	firstAccessibleMonth := enrollmentMonth
	if firstAccessibleMonth < 1 {
		firstAccessibleMonth = 1
	}

	result := &model.CourseAccessResult{Courses: make([]model.CourseAccess, 0, len(courses))}
	for _, c := range courses {
		status := model.AccessLocked
		if c.MonthOrder >= firstAccessibleMonth && c.MonthOrder <= currentMonth {
			status = model.AccessActive
		}
		result.Courses = append(result.Courses, model.CourseAccess{Course: c, Status: status})
	}

	switch {
	case firstAccessibleMonth > currentMonth:
		// Enrollment date ahead of the calendar (clock skew or a data entry
		// slip). Everything is locked; say so rather than stay silent.
		s.logger.Warn().Str("user_id", userID).Str("cohort_id", enr.CohortID).
			Int("first_accessible_month", firstAccessibleMonth).
			Int("current_program_month", currentMonth).
			Msg("Enrollment month is ahead of the current program month")
		result.EnrollmentMessage = msgFutureEnrollment
	case firstAccessibleMonth > 1 && firstAccessibleMonth == currentMonth:
		result.EnrollmentMessage = fmt.Sprintf(
			"You joined the %s partway through the program. Months before month %d stay locked, and upcoming months will unlock as the program progresses.",
			intake.DisplayName(), firstAccessibleMonth)
	case firstAccessibleMonth == 1 && currentMonth > 1:
		result.EnrollmentMessage = fmt.Sprintf("Month %d of your program is currently active.", currentMonth)
	default:
		result.EnrollmentMessage = fmt.Sprintf("Welcome to the %s! Month %d is now active.",
			intake.DisplayName(), currentMonth)
	}

	return result, nil
}

func lockedResult(courses []model.Course, message string) *model.CourseAccessResult {
	result := &model.CourseAccessResult{
		Courses:           make([]model.CourseAccess, 0, len(courses)),
		EnrollmentMessage: message,
	}
	for _, c := range courses {
		result.Courses = append(result.Courses, model.CourseAccess{Course: c, Status: model.AccessLocked})
	}
	return result
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
