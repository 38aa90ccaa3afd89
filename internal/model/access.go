package model

// AccessStatus says whether a course is open to a user.
type AccessStatus string

const (
	AccessActive AccessStatus = "active"
	AccessLocked AccessStatus = "locked"
)

// CourseAccess pairs a course with its resolved access status for one user.
type CourseAccess struct {
	Course Course
	Status AccessStatus
}

// CourseAccessResult is the full outcome of resolving a user's course
// access: every published course with a status, plus an optional message
// explaining the user's enrollment situation. It is derived per request and
// never persisted.
type CourseAccessResult struct {
	Courses           []CourseAccess
	EnrollmentMessage string
}
