package service

import (
	"context"
	"encoding/base64"
	"encoding/json"

	"academy/internal/api/v1/dto"
	"academy/internal/model"
	"academy/internal/repository"
)

// DLQService persists enrollment events that exhausted their delivery
// retries so support can replay them by hand.
type DLQService interface {
	ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error
}

type dlqService struct {
	repo repository.DLQRepository
}

// NewDLQService creates a new DLQService
func NewDLQService(repo repository.DLQRepository) DLQService {
	return &dlqService{repo: repo}
}

func (s *dlqService) ProcessAndSave(ctx context.Context, req *dto.PubSubPushRequest) error {
	decodedPayload, err := base64.StdEncoding.DecodeString(req.Message.Data)
	if err != nil {
		// If we can't even decode it, save the raw data
		decodedPayload = []byte(req.Message.Data)
	}

	var attributesJSON *string
	if len(req.Message.Attributes) > 0 {
		if attrBytes, err := json.Marshal(req.Message.Attributes); err == nil {
			attrStr := string(attrBytes)
			attributesJSON = &attrStr
		}
	}

	return s.repo.Create(ctx, &model.DeadLetterMessage{
		SubscriptionName: req.Subscription,
		MessageID:        req.Message.MessageID,
		Payload:          string(decodedPayload),
		Attributes:       attributesJSON,
		Status:           "unprocessed",
	})
}
