package audit

import (
	"context"
	"time"

	"go-vault/internal/common/models"

	"go.uber.org/zap"
)

type AuditService interface {
	LogChange(ctx context.Context, action models.AuditAction, orgID, fileID, actorID string, changes map[string]models.Change) error
}

type AuditServiceImpl struct {
	AuditRepo AuditRepository
	Logger    *zap.Logger
}

func NewAuditService(auditRepo AuditRepository, logger *zap.Logger) AuditService {
	return &AuditServiceImpl{
		AuditRepo: auditRepo,
		Logger:    logger,
	}
}

// LogChange records a lifecycle mutation. Audit failures are logged but
// never fail the mutation that triggered them.
func (s *AuditServiceImpl) LogChange(ctx context.Context, action models.AuditAction, orgID, fileID, actorID string, changes map[string]models.Change) error {
	entry := &models.AuditLog{
		OrgID:     orgID,
		Action:    action,
		FileID:    fileID,
		ActorID:   actorID,
		Changes:   changes,
		Timestamp: time.Now(),
	}

	if err := s.AuditRepo.Create(ctx, entry); err != nil {
		s.Logger.Warn("audit write failed",
			zap.String("action", string(action)),
			zap.Error(err))
		return err
	}
	return nil
}
