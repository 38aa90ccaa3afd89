package service

import (
	"context"
	"fmt"

	"academy/internal/config"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretService resolves operational secrets (JWT signing key, DB password)
// from GCP Secret Manager. Used in non-development environments where
// secrets are not passed through the environment.
type SecretService interface {
	GetSecret(ctx context.Context, name string) (string, error)
	Close() error
}

type secretService struct {
	client    *secretmanager.Client
	projectID string
}

// NewSecretService creates a new SecretService
func NewSecretService(ctx context.Context, cfg *config.Config) (SecretService, error) {
	if cfg.GCPProjectID == "" {
		return nil, fmt.Errorf("GCP project ID is not set")
	}
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Secret Manager client: %w", err)
	}
	return &secretService{client: client, projectID: cfg.GCPProjectID}, nil
}

// GetSecret fetches the latest version of a named secret.
func (s *secretService) GetSecret(ctx context.Context, name string) (string, error) {
	result, err := s.client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", s.projectID, name),
	})
	if err != nil {
		return "", fmt.Errorf("failed to access secret %s: %w", name, err)
	}
	return string(result.Payload.Data), nil
}

func (s *secretService) Close() error {
	return s.client.Close()
}
