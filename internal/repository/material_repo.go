package repository

import (
	"context"
	"database/sql"

	"academy/internal/model"
)

// MaterialRepository provides access to uploaded course materials.
type MaterialRepository interface {
	// GetMaterialByID retrieves a material record, or nil if not found.
	GetMaterialByID(ctx context.Context, materialID string) (*model.Material, error)
}

type materialRepo struct {
	db *sql.DB
}

// NewMaterialRepo creates a new MaterialRepository
func NewMaterialRepo(db *sql.DB) MaterialRepository {
	return &materialRepo{db: db}
}

func (r *materialRepo) GetMaterialByID(ctx context.Context, materialID string) (*model.Material, error) {
	query := `
		SELECT material_id, course_id, title, storage_path, content_type, created_at
		FROM materials
		WHERE material_id = $1
	`
	var m model.Material
	err := r.db.QueryRowContext(ctx, query, materialID).Scan(
		&m.MaterialID,
		&m.CourseID,
		&m.Title,
		&m.StoragePath,
		&m.ContentType,
		&m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
