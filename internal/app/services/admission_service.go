package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// SumScores totals the score entries of one application. No entries total zero.
func SumScores(scores []models.ScoreEntry) float64 {
	var total float64
	for _, s := range scores {
		total += s.Score
	}
	return total
}

// EvaluateVerdict derives the admission verdict of an application.
// Every read path goes through here. A nil threshold means nothing is published yet.
func EvaluateVerdict(app models.Application, scores []models.ScoreEntry, threshold *models.AdmissionThreshold) models.Verdict {
	v := models.Verdict{
		ApplicationID: app.ID,
		ExamID:        app.ExamID,
		Major:         app.Major,
		Total:         SumScores(scores),
		Status:        models.VerdictUnpublished,
	}
	if threshold == nil {
		return v
	}

	minScore := threshold.MinScore
	v.MinScore = &minScore
	if v.Total >= minScore {
		v.Status = models.VerdictAdmitted
	} else {
		v.Status = models.VerdictNotAdmitted
	}
	return v
}

// AdmissionService computes verdicts and manages thresholds
type AdmissionService interface {
	// ForStudent evaluates the caller's most recent application.
	ForStudent(ctx context.Context, actor *auth.Identity) (*models.ApplicationResult, error)
	// ForApplication evaluates one application. Students may only read their own.
	ForApplication(ctx context.Context, actor *auth.Identity, applicationID int64) (*models.ApplicationResult, error)
	// ResultsForStudent evaluates every application of the caller, newest first.
	ResultsForStudent(ctx context.Context, actor *auth.Identity) ([]models.ApplicationResult, error)
	SetThreshold(ctx context.Context, actor *auth.Identity, examID int64, major string, minScore *float64) (*models.AdmissionThreshold, error)
}

type admissionServiceImpl struct {
	appRepo       repositories.IApplicationRepository
	examRepo      repositories.IExamRepository
	scoreRepo     repositories.IScoreRepository
	thresholdRepo repositories.IThresholdRepository
	auditor       Auditor
	metrics       *metrics.Metrics
	now           Clock
	logger        zerolog.Logger
}

// NewAdmissionService creates a new admission service instance
func NewAdmissionService(
	appRepo repositories.IApplicationRepository,
	examRepo repositories.IExamRepository,
	scoreRepo repositories.IScoreRepository,
	thresholdRepo repositories.IThresholdRepository,
	auditor Auditor,
	m *metrics.Metrics,
	now Clock,
	logger zerolog.Logger,
) AdmissionService {
	return &admissionServiceImpl{
		appRepo:       appRepo,
		examRepo:      examRepo,
		scoreRepo:     scoreRepo,
		thresholdRepo: thresholdRepo,
		auditor:       auditor,
		metrics:       m,
		now:           now,
		logger:        logger,
	}
}

// evaluate loads scores and threshold fresh on every call
func (s *admissionServiceImpl) evaluate(ctx context.Context, app models.Application) (*models.ApplicationResult, error) {
	scores, err := s.scoreRepo.ListByApplication(ctx, app.ID)
	if err != nil {
		return nil, err
	}

	threshold, err := s.thresholdRepo.Get(ctx, app.ExamID, app.Major)
	if err != nil {
		if !errors.Is(err, apperrors.ErrThresholdNotFound) {
			return nil, err
		}
		threshold = nil
	}

	result := &models.ApplicationResult{
		Application: app,
		Scores:      scores,
		Verdict:     EvaluateVerdict(app, scores, threshold),
	}

	exam, err := s.examRepo.GetByID(ctx, app.ExamID)
	switch {
	case err == nil:
		result.Exam = exam
	case !errors.Is(err, apperrors.ErrExamNotFound):
		return nil, err
	}

	s.metrics.Verdict(string(result.Verdict.Status))
	return result, nil
}

func (s *admissionServiceImpl) ForStudent(ctx context.Context, actor *auth.Identity) (*models.ApplicationResult, error) {
	if actor == nil {
		return nil, apperrors.ErrTokenMissing
	}
	app, err := s.appRepo.LatestByStudent(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	return s.evaluate(ctx, *app)
}

func (s *admissionServiceImpl) ForApplication(ctx context.Context, actor *auth.Identity, applicationID int64) (*models.ApplicationResult, error) {
	if actor == nil {
		return nil, apperrors.ErrTokenMissing
	}
	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.StudentID != actor.UserID && !actor.CanManageRecruitment() {
		return nil, apperrors.ErrNotOwner
	}
	return s.evaluate(ctx, *app)
}

func (s *admissionServiceImpl) ResultsForStudent(ctx context.Context, actor *auth.Identity) ([]models.ApplicationResult, error) {
	if actor == nil {
		return nil, apperrors.ErrTokenMissing
	}
	apps, err := s.appRepo.ListByStudent(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	results := make([]models.ApplicationResult, 0, len(apps))
	for _, app := range apps {
		r, err := s.evaluate(ctx, app)
		if err != nil {
			return nil, err
		}
		results = append(results, *r)
	}
	return results, nil
}

// SetThreshold publishes or replaces the minimum score for an exam and major
func (s *admissionServiceImpl) SetThreshold(ctx context.Context, actor *auth.Identity, examID int64, major string, minScore *float64) (*models.AdmissionThreshold, error) {
	if err := auth.RequireRecruitment(actor); err != nil {
		return nil, err
	}

	major = strings.TrimSpace(major)
	switch {
	case examID <= 0:
		return nil, apperrors.NewValidationError("EXAM_ID_REQUIRED", "examId is required")
	case major == "":
		return nil, apperrors.NewValidationError("MAJOR_REQUIRED", "major cannot be empty")
	case tooLong(major, maxMajorLength):
		return nil, apperrors.NewValidationError("MAJOR_TOO_LONG", "major must be at most 100 characters")
	case minScore == nil:
		return nil, apperrors.NewValidationError("MIN_SCORE_REQUIRED", "minScore is required")
	}

	if _, err := s.examRepo.GetByID(ctx, examID); err != nil {
		return nil, err
	}

	threshold := &models.AdmissionThreshold{
		ExamID:   examID,
		Major:    major,
		MinScore: *minScore,
		SetBy:    actor.UserID,
		SetTime:  s.now(),
	}
	if err := s.thresholdRepo.Upsert(ctx, threshold); err != nil {
		return nil, err
	}

	s.metrics.ThresholdSet()
	s.logger.Info().
		Int64("examID", examID).
		Str("major", major).
		Float64("minScore", *minScore).
		Msg("Admission threshold set")
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("set threshold exam %d major %s to %.2f", examID, major, *minScore))
	return threshold, nil
}
