package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// Auditor records who did what. It never fails the caller.
type Auditor interface {
	Record(ctx context.Context, userID int64, action string)
}

type auditorImpl struct {
	repo    repositories.IAuditRepository
	metrics *metrics.Metrics
	logger  zerolog.Logger
	now     Clock
}

// NewAuditor creates an auditor writing to the system log repository
func NewAuditor(repo repositories.IAuditRepository, m *metrics.Metrics, logger zerolog.Logger, now Clock) Auditor {
	return &auditorImpl{repo: repo, metrics: m, logger: logger, now: now}
}

// Record stores the entry synchronously; failures are logged and dropped.
func (a *auditorImpl) Record(ctx context.Context, userID int64, action string) {
	entry := &models.AuditEntry{
		UserID:    userID,
		Action:    action,
		LogTime:   a.now(),
		IPAddress: auth.ClientIPFromContext(ctx),
	}
	if err := a.repo.Record(ctx, entry); err != nil {
		a.metrics.AuditFailed()
		a.logger.Warn().Err(err).
			Int64("userID", userID).
			Str("action", action).
			Msg("Failed to record audit entry")
	}
}
