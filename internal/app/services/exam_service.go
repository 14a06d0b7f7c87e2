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
)

// ExamService defines operations on exam offerings
type ExamService interface {
	Create(ctx context.Context, actor *auth.Identity, exam *models.Exam) error
	Update(ctx context.Context, actor *auth.Identity, exam *models.Exam) error
	Get(ctx context.Context, id int64) (*models.Exam, error)
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
}

type examServiceImpl struct {
	examRepo repositories.IExamRepository
	auditor  Auditor
	logger   zerolog.Logger
}

// NewExamService creates a new exam service instance
func NewExamService(examRepo repositories.IExamRepository, auditor Auditor, logger zerolog.Logger) ExamService {
	return &examServiceImpl{examRepo: examRepo, auditor: auditor, logger: logger}
}

// validateExam validates exam data before storage operations
func validateExam(exam *models.Exam) error {
	if exam == nil {
		return apperrors.NewValidationError("INVALID_PAYLOAD", "exam is nil")
	}
	exam.Name = strings.TrimSpace(exam.Name)
	exam.Type = strings.TrimSpace(exam.Type)
	exam.Major = strings.TrimSpace(exam.Major)

	switch {
	case exam.Name == "":
		return apperrors.NewValidationError("EXAM_NAME_REQUIRED", "exam name cannot be empty")
	case exam.Type == "":
		return apperrors.NewValidationError("EXAM_TYPE_REQUIRED", "exam type cannot be empty")
	case exam.Major == "":
		return apperrors.NewValidationError("MAJOR_REQUIRED", "major cannot be empty")
	case tooLong(exam.Name, maxExamNameLength):
		return apperrors.NewValidationError("EXAM_NAME_TOO_LONG", "exam name must be at most 100 characters")
	case tooLong(exam.Type, maxExamTypeLength):
		return apperrors.NewValidationError("EXAM_TYPE_TOO_LONG", "exam type must be at most 50 characters")
	case tooLong(exam.Major, maxMajorLength):
		return apperrors.NewValidationError("MAJOR_TOO_LONG", "major must be at most 100 characters")
	case exam.Time.IsZero():
		return apperrors.NewValidationError("EXAM_TIME_REQUIRED", "exam time is required")
	case exam.CandidateCount < 0:
		return apperrors.NewValidationError("INVALID_CANDIDATE_COUNT", "candidate count cannot be negative")
	}
	return nil
}

func (s *examServiceImpl) Create(ctx context.Context, actor *auth.Identity, exam *models.Exam) error {
	if err := auth.RequireRecruitment(actor); err != nil {
		return err
	}
	if err := validateExam(exam); err != nil {
		return err
	}
	if err := s.examRepo.Create(ctx, exam); err != nil {
		return err
	}

	s.logger.Info().Int64("examID", exam.ID).Str("major", exam.Major).Msg("Exam offering created")
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("create exam %d", exam.ID))
	return nil
}

func (s *examServiceImpl) Update(ctx context.Context, actor *auth.Identity, exam *models.Exam) error {
	if err := auth.RequireRecruitment(actor); err != nil {
		return err
	}
	if err := validateExam(exam); err != nil {
		return err
	}
	if err := s.examRepo.Update(ctx, exam); err != nil {
		return err
	}

	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("update exam %d", exam.ID))
	return nil
}

func (s *examServiceImpl) Get(ctx context.Context, id int64) (*models.Exam, error) {
	return s.examRepo.GetByID(ctx, id)
}

func (s *examServiceImpl) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	filter.Type = strings.TrimSpace(filter.Type)
	filter.Major = strings.TrimSpace(filter.Major)
	return s.examRepo.List(ctx, filter)
}
