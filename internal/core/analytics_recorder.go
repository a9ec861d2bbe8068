package core

import (
	"context"
	"time"

	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
)

type analyticsRecorder struct {
	analyticsRepo db.AnalyticsRepository
	logger        *zap.Logger
}

// NewAnalyticsRecorder creates a recorder backed by the daily counters.
func NewAnalyticsRecorder(analyticsRepo db.AnalyticsRepository, logger *zap.Logger) AnalyticsRecorder {
	return &analyticsRecorder{analyticsRepo: analyticsRepo, logger: logger}
}

func (r *analyticsRecorder) RecordMessage(ctx context.Context, day time.Time) {
	if err := r.analyticsRepo.IncrementDaily(ctx, day, "messages", 1); err != nil {
		r.logger.Warn("failed to record message count", zap.Error(err))
	}
}

func (r *analyticsRecorder) RecordImage(ctx context.Context, day time.Time) {
	if err := r.analyticsRepo.IncrementDaily(ctx, day, "images", 1); err != nil {
		r.logger.Warn("failed to record image count", zap.Error(err))
	}
}
