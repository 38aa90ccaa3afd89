package router

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"academy/internal/api/v1/handler"
	"academy/internal/config"
	"academy/internal/middleware"
	"academy/internal/pubsub"
	"academy/internal/repository"
	"academy/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func New(cfg *config.Config, logger zerolog.Logger) (http.Handler, *sql.DB, error) {
	// 1. Open DB connection (connection pooling)
	dsn := cfg.DBConnectionString
	// Local Postgres usually runs without TLS; production connection strings
	// arrive with their own SSL settings.
	if cfg.Environment == "development" && !strings.Contains(dsn, "sslmode") {
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + "sslmode=disable"
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to open DB connection")
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		logger.Error().Err(err).Msg("Failed to ping DB")
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)

	// 2. Initialize S3 client for course materials
	s3Config, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load S3 config")
		return nil, nil, err
	}
	s3Client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		}
	})

	// 3. Initialize validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 4. Initialize Pub/Sub publisher for progress events
	pubSubPublisher, err := pubsub.NewPublisher(context.Background(), cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create Pub/Sub publisher")
		return nil, nil, err
	}

	// 5. Initialize repositories & services & handlers
	userRepo := repository.NewUserRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	weekRepo := repository.NewWeekRepo(db, logger)
	progressRepo := repository.NewProgressRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	materialRepo := repository.NewMaterialRepo(db)
	dlqRepo := repository.NewDLQRepo(db)

	accessSvc := service.NewAccessService(userRepo, courseRepo, time.Now, logger)
	gradeSvc := service.NewGradeService(courseRepo, weekRepo, progressRepo, quizRepo, logger)
	progressSvc := service.NewProgressService(progressRepo, pubSubPublisher, cfg.PubSubProgressTopic, logger)
	enrollmentSvc := service.NewEnrollmentService(userRepo, validate, logger)
	materialSvc := service.NewMaterialService(materialRepo, accessSvc, s3Client, cfg.S3Bucket,
		time.Duration(cfg.PresignExpiryMin)*time.Minute, logger)
	dlqSvc := service.NewDLQService(dlqRepo)

	courseHandler := handler.NewCourseHandler(accessSvc, gradeSvc, logger)
	progressHandler := handler.NewProgressHandler(progressSvc, validate, logger)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, dlqSvc, logger)
	materialHandler := handler.NewMaterialHandler(materialSvc, logger)

	// 6. Initialize middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret)
	optionalAuthMiddleware := middleware.OptionalAuthMiddleware(cfg.JWTSecret)
	isLocalDev := cfg.PubSubEmulatorHost != ""
	pubsubAuthMiddleware := middleware.PubSubAuthMiddleware(isLocalDev, cfg.EnrollmentEndpointURL, cfg.PubSubPushServiceAccountEmail, logger)

	// 7. Create ServeMux router
	apiV1Mux := http.NewServeMux()
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware, optionalAuthMiddleware)
	progressHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	enrollmentHandler.RegisterRoutes(apiV1Mux, pubsubAuthMiddleware)
	materialHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(c.Handler(mux)), db, nil
}

// removeDisableGzip is a workaround for S3 signature errors with some
// S3-compatible services. See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
