package dto

// SectionProgressRequestDTO marks a section complete or incomplete.
type SectionProgressRequestDTO struct {
	Completed *bool `json:"completed" validate:"required"`
}

// SectionProgressResponseDTO acknowledges a recorded mark.
type SectionProgressResponseDTO struct {
	WeekID    string `json:"week_id"`
	SectionID string `json:"section_id"`
	Completed bool   `json:"completed"`
}
