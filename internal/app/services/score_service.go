package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// ScoreService records subject scores
type ScoreService interface {
	EnterScore(ctx context.Context, actor *auth.Identity, applicationID int64, subject string, score *float64) (*models.ScoreEntry, error)
}

type scoreServiceImpl struct {
	scoreRepo repositories.IScoreRepository
	appRepo   repositories.IApplicationRepository
	auditor   Auditor
	metrics   *metrics.Metrics
	now       Clock
	logger    zerolog.Logger
}

// NewScoreService creates a new score service instance
func NewScoreService(
	scoreRepo repositories.IScoreRepository,
	appRepo repositories.IApplicationRepository,
	auditor Auditor,
	m *metrics.Metrics,
	now Clock,
	logger zerolog.Logger,
) ScoreService {
	return &scoreServiceImpl{
		scoreRepo: scoreRepo,
		appRepo:   appRepo,
		auditor:   auditor,
		metrics:   m,
		now:       now,
		logger:    logger,
	}
}

// EnterScore appends one score entry to an existing application
func (s *scoreServiceImpl) EnterScore(ctx context.Context, actor *auth.Identity, applicationID int64, subject string, score *float64) (*models.ScoreEntry, error) {
	if err := auth.RequireRecruitment(actor); err != nil {
		return nil, err
	}

	subject = strings.TrimSpace(subject)
	switch {
	case applicationID <= 0:
		return nil, apperrors.NewValidationError("APPLICATION_ID_REQUIRED", "applicationId is required")
	case subject == "":
		return nil, apperrors.NewValidationError("SUBJECT_REQUIRED", "subject cannot be empty")
	case tooLong(subject, maxSubjectLength):
		return nil, apperrors.NewValidationError("SUBJECT_TOO_LONG", "subject must be at most 100 characters")
	case score == nil:
		return nil, apperrors.NewValidationError("SCORE_REQUIRED", "score is required")
	}

	if _, err := s.appRepo.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	entry := &models.ScoreEntry{
		ApplicationID: applicationID,
		Subject:       subject,
		Score:         *score,
		EnteredBy:     actor.UserID,
		EntryTime:     s.now(),
	}
	if err := s.scoreRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.metrics.ScoreEntered()
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("enter score for application %d (%s)", applicationID, subject))
	return entry, nil
}
