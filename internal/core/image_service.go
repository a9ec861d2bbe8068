package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/llm"
	"smartai-backend-go/internal/models"
)

const (
	defaultImageSize    = "1024x1024"
	defaultImageQuality = "standard"
	defaultImageStyle   = "vivid"
)

type imageService struct {
	imageClient llm.ImageClient
	userRepo    db.UserRepository
	imageRepo   db.ImageRepository
	analytics   AnalyticsRecorder
	logger      *zap.Logger
}

// NewImageService creates a new image service.
func NewImageService(imageClient llm.ImageClient, userRepo db.UserRepository, imageRepo db.ImageRepository, analytics AnalyticsRecorder, logger *zap.Logger) ImageService {
	return &imageService{
		imageClient: imageClient,
		userRepo:    userRepo,
		imageRepo:   imageRepo,
		analytics:   analytics,
		logger:      logger,
	}
}

// Generate creates one image. The quota is checked before the provider is
// called so exhausted users never consume provider credits.
func (s *imageService) Generate(ctx context.Context, uid string, req *models.GenerateImageRequest) (*models.GeneratedImage, error) {
	if req.Prompt == "" {
		return nil, fmt.Errorf("%w: prompt must not be empty", ErrInvalidArgument)
	}

	user, err := s.userRepo.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}
	if user.ImagesGenerated >= user.ImageQuota {
		return nil, fmt.Errorf("%w: image quota of %d reached", ErrQuotaExceeded, user.ImageQuota)
	}

	size := req.Size
	if size == "" {
		size = defaultImageSize
	}
	quality := req.Quality
	if quality == "" {
		quality = defaultImageQuality
	}
	style := req.Style
	if style == "" {
		style = defaultImageStyle
	}

	result, err := s.imageClient.Generate(ctx, llm.ImageRequest{
		Prompt:  req.Prompt,
		Size:    size,
		Quality: quality,
		Style:   style,
	})
	if err != nil {
		return nil, err
	}

	image := &models.GeneratedImage{
		Prompt:        req.Prompt,
		RevisedPrompt: result.RevisedPrompt,
		URL:           result.URL,
		Size:          size,
		Quality:       quality,
		Style:         style,
		CreatedAt:     time.Now(),
	}
	id, err := s.imageRepo.Create(ctx, uid, image)
	if err != nil {
		// The image exists at the provider; return it anyway.
		s.logger.Warn("failed to store generated image", zap.String("userID", uid), zap.Error(err))
	} else {
		image.ID = id
	}

	if err := s.userRepo.IncrementUsage(ctx, uid, "imagesGenerated", 1); err != nil {
		s.logger.Warn("failed to increment image usage", zap.String("userID", uid), zap.Error(err))
	}
	s.analytics.RecordImage(ctx, time.Now())

	return image, nil
}
