package dto

// CourseWithAccessDTO is one course row in the access view.
type CourseWithAccessDTO struct {
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	MonthOrder  int    `json:"month_order"`
	Status      string `json:"status"`
}

// CourseAccessResponseDTO is returned by the course access endpoint.
type CourseAccessResponseDTO struct {
	Courses           []CourseWithAccessDTO `json:"courses"`
	EnrollmentMessage *string               `json:"enrollment_message"`
}
