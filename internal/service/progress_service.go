package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"academy/internal/pubsub"
	"academy/internal/repository"

	"github.com/rs/zerolog"
)

// ProgressService records section completions as users work through their
// weeks.
type ProgressService interface {
	MarkSectionProgress(ctx context.Context, userID, weekID, sectionID string, completed bool) error
}

type progressService struct {
	progressRepo  repository.ProgressRepository
	publisher     pubsub.Publisher
	progressTopic string
	logger        zerolog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(progressRepo repository.ProgressRepository, publisher pubsub.Publisher, progressTopic string, logger zerolog.Logger) ProgressService {
	return &progressService{
		progressRepo:  progressRepo,
		publisher:     publisher,
		progressTopic: progressTopic,
		logger:        logger.With().Str("service", "ProgressService").Logger(),
	}
}

// sectionProgressEvent is published whenever a user marks a section.
type sectionProgressEvent struct {
	Event     string    `json:"event"`
	UserID    string    `json:"user_id"`
	WeekID    string    `json:"week_id"`
	SectionID string    `json:"section_id"`
	Completed bool      `json:"completed"`
	At        time.Time `json:"at"`
}

func (s *progressService) MarkSectionProgress(ctx context.Context, userID, weekID, sectionID string, completed bool) error {
	if err := s.progressRepo.UpsertSectionProgress(ctx, userID, weekID, sectionID, completed); err != nil {
		return fmt.Errorf("failed to record section progress: %w", err)
	}

	// The event stream feeds analytics; a publish failure must not undo a
	// recorded completion.
	if s.publisher != nil {
		payload, err := json.Marshal(sectionProgressEvent{
			Event:     "progress.section",
			UserID:    userID,
			WeekID:    weekID,
			SectionID: sectionID,
			Completed: completed,
			At:        time.Now().UTC(),
		})
		if err == nil {
			if _, err := s.publisher.Publish(ctx, s.progressTopic, payload, map[string]string{"event": "progress.section"}); err != nil {
				s.logger.Error().Err(err).Str("user_id", userID).Str("section_id", sectionID).
					Msg("Failed to publish section progress event")
			}
		}
	}
	return nil
}
