package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"academy/internal/model"
	"academy/internal/repository"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"
)

var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrMaterialLocked   = errors.New("material belongs to a locked course")
)

// MaterialService hands out short-lived download URLs for stored course
// documents, gated on the caller's resolved course access.
type MaterialService interface {
	GetDownloadURL(ctx context.Context, userID, materialID string) (string, error)
}

type materialService struct {
	materialRepo  repository.MaterialRepository
	accessSvc     AccessService
	presignClient *s3.PresignClient
	bucketName    string
	expiry        time.Duration
	logger        zerolog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(
	materialRepo repository.MaterialRepository,
	accessSvc AccessService,
	s3Client *s3.Client,
	bucketName string,
	expiry time.Duration,
	logger zerolog.Logger,
) MaterialService {
	return &materialService{
		materialRepo:  materialRepo,
		accessSvc:     accessSvc,
		presignClient: s3.NewPresignClient(s3Client),
		bucketName:    bucketName,
		expiry:        expiry,
		logger:        logger.With().Str("service", "MaterialService").Logger(),
	}
}

func (s *materialService) GetDownloadURL(ctx context.Context, userID, materialID string) (string, error) {
	material, err := s.materialRepo.GetMaterialByID(ctx, materialID)
	if err != nil {
		return "", fmt.Errorf("failed to load material %s: %w", materialID, err)
	}
	if material == nil {
		return "", ErrMaterialNotFound
	}

	// A material is only served if the month it belongs to is open to the
	// caller.
	access, err := s.accessSvc.ResolveCourseAccess(ctx, userID)
	if err != nil {
		return "", err
	}
	if !courseActive(access, material.CourseID) {
		return "", ErrMaterialLocked
	}

	req, err := s.presignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(material.StoragePath),
	}, s3.WithPresignExpires(s.expiry))
	if err != nil {
		s.logger.Error().Err(err).Str("material_id", materialID).Msg("Failed to presign material download")
		return "", fmt.Errorf("failed to generate download URL: %w", err)
	}
	return req.URL, nil
}

func courseActive(access *model.CourseAccessResult, courseID string) bool {
	for _, ca := range access.Courses {
		if ca.Course.CourseID == courseID {
			return ca.Status == model.AccessActive
		}
	}
	return false
}
