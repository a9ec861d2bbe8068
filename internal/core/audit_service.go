package core

import (
	"context"

	"go.uber.org/zap"

	"smartai-backend-go/internal/db"
	"smartai-backend-go/internal/models"
)

type auditService struct {
	adminLogRepo db.AdminLogRepository
	logger       *zap.Logger
}

// NewAuditService creates a new audit service.
func NewAuditService(adminLogRepo db.AdminLogRepository, logger *zap.Logger) AuditService {
	return &auditService{adminLogRepo: adminLogRepo, logger: logger}
}

// Record writes one audit entry. Audit failures are logged but never fail
// the admin action itself.
func (s *auditService) Record(ctx context.Context, action, adminUID, targetType, targetID string, changes map[string]interface{}) {
	entry := models.AdminLog{
		Action:     action,
		AdminID:    adminUID,
		TargetType: targetType,
		TargetID:   targetID,
		Changes:    changes,
	}
	if err := s.adminLogRepo.Create(ctx, entry); err != nil {
		s.logger.Error("failed to write audit entry",
			zap.String("action", action),
			zap.String("adminID", adminUID),
			zap.Error(err))
	}
}
