package model

import "time"

// DeadLetterMessage is an enrollment event that exhausted its delivery
// retries, persisted for manual review.
type DeadLetterMessage struct {
	ID               string    `db:"id"`
	SubscriptionName string    `db:"subscription_name"`
	MessageID        string    `db:"message_id"`
	Payload          string    `db:"payload"`    // JSON string
	Attributes       *string   `db:"attributes"` // JSON string, may be null
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}
