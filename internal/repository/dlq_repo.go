package repository

import (
	"context"
	"database/sql"

	"academy/internal/model"
)

// DLQRepository persists enrollment events that exhausted delivery retries.
type DLQRepository interface {
	Create(ctx context.Context, message *model.DeadLetterMessage) error
}

type dlqRepo struct {
	db *sql.DB
}

// NewDLQRepo creates a new DLQRepository
func NewDLQRepo(db *sql.DB) DLQRepository {
	return &dlqRepo{db: db}
}

func (r *dlqRepo) Create(ctx context.Context, message *model.DeadLetterMessage) error {
	query := `
		INSERT INTO dead_letter_messages (subscription_name, message_id, payload, attributes, status)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(
		ctx,
		query,
		message.SubscriptionName,
		message.MessageID,
		message.Payload,
		message.Attributes,
		message.Status,
	)
	return err
}
