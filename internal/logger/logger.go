package logger

import (
	"os"

	"github.com/rs/zerolog"
)

func New() zerolog.Logger {
	// For Google Cloud Logging, the level field name should be "severity"
	// so Cloud Logging parses levels automatically.
	zerolog.LevelFieldName = "severity"
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	level := zerolog.InfoLevel
	if os.Getenv("ENV") == "development" {
		// ConsoleWriter for readable local logs.
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		level = zerolog.DebugLevel
	}

	return logger.Level(level)
}
