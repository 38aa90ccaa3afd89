package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port               string `envconfig:"PORT" default:"8080"`
	Environment        string `envconfig:"ENV" default:"development"`
	DBConnectionString string `envconfig:"DB_CONNECTION_STRING" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET"`

	// When set, the JWT secret is resolved from GCP Secret Manager at boot
	// instead of JWT_SECRET. Intended for staging/production.
	JWTSecretName string `envconfig:"JWT_SECRET_NAME"`

	// Object storage for course materials.
	S3URL       string `envconfig:"S3_URL"`
	S3Bucket    string `envconfig:"S3_BUCKET"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY"`

	// Signed download URLs expire after this many minutes.
	PresignExpiryMin int `envconfig:"PRESIGN_EXPIRY_MIN" default:"15"`

	// Pub/Sub. Progress events are published on section completion;
	// enrollment events arrive on a push subscription.
	GCPProjectID          string `envconfig:"GCP_PROJECT_ID"`
	PubSubProgressTopic   string `envconfig:"PUBSUB_PROGRESS_TOPIC" default:"progress-events"`
	PubSubEmulatorHost    string `envconfig:"PUBSUB_EMULATOR_HOST"`
	EnrollmentEndpointURL string `envconfig:"ENROLLMENT_ENDPOINT_URL"`

	PubSubPushServiceAccountEmail string `envconfig:"PUBSUB_PUSH_SERVICE_ACCOUNT_EMAIL"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
