package dto

import "time"

// PubSubPushRequest is the request body for a Pub/Sub push notification.
type PubSubPushRequest struct {
	Message      PubSubMessage `json:"message"`
	Subscription string        `json:"subscription"`
}

// PubSubMessage is the actual message from Pub/Sub.
type PubSubMessage struct {
	Data       string            `json:"data"` // Base64-encoded
	MessageID  string            `json:"messageId"`
	Attributes map[string]string `json:"attributes"`
}

// EnrollmentEvent is the decoded payload of an enrollment push message,
// emitted by the registration system when a payment completes or support
// moves a student between cohorts.
type EnrollmentEvent struct {
	UserID     string    `json:"user_id" validate:"required"`
	CohortID   string    `json:"cohort_id" validate:"required"`
	EnrolledAt time.Time `json:"enrolled_at" validate:"required"`
}
