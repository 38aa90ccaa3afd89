package service

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"academy/internal/api/v1/dto"
	"academy/internal/cohort"
	"academy/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// EnrollmentService applies cohort-enrollment events pushed by the
// registration/payment system. The access service only ever reads the
// enrollment record; this is the one writer on this side.
type EnrollmentService interface {
	// ApplyPushedEvent decodes a Pub/Sub push envelope carrying an
	// enrollment event and applies it to the user record.
	ApplyPushedEvent(ctx context.Context, req *dto.PubSubPushRequest) error
}

type enrollmentService struct {
	userRepo repository.UserRepository
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(userRepo repository.UserRepository, validate *validator.Validate, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		userRepo: userRepo,
		validate: validate,
		logger:   logger.With().Str("service", "EnrollmentService").Logger(),
	}
}

func (s *enrollmentService) ApplyPushedEvent(ctx context.Context, req *dto.PubSubPushRequest) error {
	payload, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		return fmt.Errorf("failed to decode message payload: %w", err)
	}

	var event dto.EnrollmentEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("failed to unmarshal enrollment event: %w", err)
	}
	if err := s.validate.Struct(&event); err != nil {
		return fmt.Errorf("invalid enrollment event: %w", err)
	}

	// Reject cohort ids that do not decode to a supported intake before they
	// can reach a user record; a bad id here would lock the user out of every
	// course later.
	if _, err := cohort.Parse(event.CohortID); err != nil {
		return fmt.Errorf("enrollment event for user %s rejected: %w", event.UserID, err)
	}

	if err := s.userRepo.UpdateEnrollment(ctx, event.UserID, event.CohortID, event.EnrolledAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("enrollment event references unknown user %s: %w", event.UserID, ErrUserNotFound)
		}
		return fmt.Errorf("failed to update enrollment for user %s: %w", event.UserID, err)
	}

	s.logger.Info().Str("user_id", event.UserID).Str("cohort_id", event.CohortID).
		Str("message_id", req.Message.MessageID).Msg("Applied enrollment event")
	return nil
}
