package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// ApplicationService drives the application state machine
type ApplicationService interface {
	Submit(ctx context.Context, actor *auth.Identity, examID int64) (*models.Application, error)
	Decide(ctx context.Context, actor *auth.Identity, applicationID int64, approve bool, explicitStatus string) (*models.Application, error)
	ListMine(ctx context.Context, actor *auth.Identity) ([]models.Application, error)
}

type applicationServiceImpl struct {
	appRepo  repositories.IApplicationRepository
	examRepo repositories.IExamRepository
	auditor  Auditor
	metrics  *metrics.Metrics
	now      Clock
	logger   zerolog.Logger
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	appRepo repositories.IApplicationRepository,
	examRepo repositories.IExamRepository,
	auditor Auditor,
	m *metrics.Metrics,
	now Clock,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		appRepo:  appRepo,
		examRepo: examRepo,
		auditor:  auditor,
		metrics:  m,
		now:      now,
		logger:   logger,
	}
}

// Submit creates a pending application. The major is copied from the exam offering.
func (s *applicationServiceImpl) Submit(ctx context.Context, actor *auth.Identity, examID int64) (*models.Application, error) {
	if err := auth.RequireStudent(actor); err != nil {
		return nil, err
	}
	if examID <= 0 {
		return nil, apperrors.NewValidationError("EXAM_ID_REQUIRED", "examId is required")
	}

	exam, err := s.examRepo.GetByID(ctx, examID)
	if err != nil {
		return nil, err
	}

	// Early rejection only; the unique constraint decides under concurrency.
	exists, err := s.appRepo.Exists(ctx, actor.UserID, examID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrAlreadyApplied
	}

	app := &models.Application{
		StudentID:       actor.UserID,
		ExamID:          exam.ID,
		Major:           exam.Major,
		ApplicationTime: s.now(),
		Status:          models.StatusPending,
	}
	if err := s.appRepo.Create(ctx, app); err != nil {
		return nil, err
	}

	s.metrics.ApplicationSubmitted()
	s.logger.Info().
		Int64("applicationID", app.ID).
		Int64("studentID", app.StudentID).
		Int64("examID", app.ExamID).
		Msg("Application submitted")
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("apply for exam %d", exam.ID))
	return app, nil
}

// Decide overwrites the decision on an application. A non-empty explicitStatus wins over approve.
func (s *applicationServiceImpl) Decide(ctx context.Context, actor *auth.Identity, applicationID int64, approve bool, explicitStatus string) (*models.Application, error) {
	if err := auth.RequireRecruitment(actor); err != nil {
		return nil, err
	}

	status := models.StatusRejected
	if approve {
		status = models.StatusConfirmed
	}
	if explicitStatus != "" {
		parsed, ok := models.ParseApplicationStatus(explicitStatus)
		if !ok {
			return nil, apperrors.ErrInvalidStatus
		}
		status = parsed
	}

	app, err := s.appRepo.UpdateDecision(ctx, applicationID, models.Decision{
		Status:    status,
		DecidedBy: actor.UserID,
		DecidedAt: s.now(),
	})
	if err != nil {
		return nil, err
	}

	s.metrics.Decision(string(app.Status))
	s.logger.Info().
		Int64("applicationID", app.ID).
		Str("status", string(app.Status)).
		Int64("decidedBy", actor.UserID).
		Msg("Application decided")
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("set application %d to %s", app.ID, app.Status))
	return app, nil
}

// ListMine returns the caller's applications, newest first
func (s *applicationServiceImpl) ListMine(ctx context.Context, actor *auth.Identity) ([]models.Application, error) {
	if err := auth.RequireStudent(actor); err != nil {
		return nil, err
	}
	return s.appRepo.ListByStudent(ctx, actor.UserID)
}
