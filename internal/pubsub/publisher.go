package pubsub

import (
	"context"
	"fmt"

	"academy/internal/config"

	"cloud.google.com/go/pubsub"
)

// Publisher defines an interface for publishing event messages.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, attributes map[string]string) (string, error)
}

// PubSubPublisher is an implementation of Publisher using Google Pub/Sub.
type PubSubPublisher struct {
	client *pubsub.Client
}

// NewPublisher creates a new PubSubPublisher using the GCP project from config.
func NewPublisher(ctx context.Context, cfg *config.Config) (*PubSubPublisher, error) {
	client, err := pubsub.NewClient(ctx, cfg.GCPProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create Pub/Sub client: %w", err)
	}
	return &PubSubPublisher{client: client}, nil
}

// Publish sends the payload to the given Pub/Sub topic and returns the
// message ID. Attributes, if any, are attached for subscription filtering.
func (p *PubSubPublisher) Publish(ctx context.Context, topic string, payload []byte, attributes map[string]string) (string, error) {
	t := p.client.Topic(topic)
	result := t.Publish(ctx, &pubsub.Message{Data: payload, Attributes: attributes})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish message to topic %s: %w", topic, err)
	}
	return id, nil
}
