package model

import "time"

// Material is an uploaded course document (slides, readings) stored in
// object storage and served to students through short-lived signed URLs.
type Material struct {
	MaterialID  string    `db:"material_id" json:"material_id"`
	CourseID    string    `db:"course_id" json:"course_id"`
	Title       string    `db:"title" json:"title"`
	StoragePath string    `db:"storage_path" json:"storage_path"`
	ContentType string    `db:"content_type" json:"content_type"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
