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
	"github.com/yigit/examadmission/internal/pkg/helpers"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// SeatRequest is the caller's input to an allocation pass. Zero values use the defaults.
type SeatRequest struct {
	ExamID       *int64
	SeatsPerRoom int
	RoomPrefix   string
	StartRoom    int
	ExamDate     string
	ExamTime     string
	Address      string
}

// AllocationResult lists the seats created by one pass
type AllocationResult struct {
	Assigned    int
	Assignments []models.RoomAssignment
}

// SeatService allocates exam seats
type SeatService interface {
	// AssignSeats seats every confirmed application without a seat.
	// On a storage failure the seats created so far are kept and reported with the error.
	AssignSeats(ctx context.Context, actor *auth.Identity, req SeatRequest) (*AllocationResult, error)
	// Preview returns the seats the next pass would create without storing them.
	Preview(ctx context.Context, actor *auth.Identity, req SeatRequest) ([]models.RoomAssignment, error)
	MySeats(ctx context.Context, actor *auth.Identity) ([]models.RoomAssignment, error)
}

type seatServiceImpl struct {
	appRepo  repositories.IApplicationRepository
	roomRepo repositories.IRoomRepository
	auditor  Auditor
	metrics  *metrics.Metrics
	defaults AllocationDefaults
	now      Clock
	logger   zerolog.Logger
}

// NewSeatService creates a new seat service instance
func NewSeatService(
	appRepo repositories.IApplicationRepository,
	roomRepo repositories.IRoomRepository,
	auditor Auditor,
	m *metrics.Metrics,
	defaults AllocationDefaults,
	now Clock,
	logger zerolog.Logger,
) SeatService {
	return &seatServiceImpl{
		appRepo:  appRepo,
		roomRepo: roomRepo,
		auditor:  auditor,
		metrics:  m,
		defaults: defaults,
		now:      now,
		logger:   logger,
	}
}

func (s *seatServiceImpl) roomConfig(req SeatRequest) (models.RoomConfig, error) {
	date, err := helpers.ParseDate(strings.TrimSpace(req.ExamDate))
	if err != nil {
		return models.RoomConfig{}, apperrors.ErrInvalidDate
	}
	switch {
	case tooLong(strings.TrimSpace(req.RoomPrefix), maxRoomPrefixLength):
		return models.RoomConfig{}, apperrors.NewValidationError("ROOM_PREFIX_TOO_LONG", "roomPrefix must be at most 16 characters")
	case tooLong(strings.TrimSpace(req.ExamTime), maxExamTimeLength):
		return models.RoomConfig{}, apperrors.NewValidationError("EXAM_TIME_TOO_LONG", "examTime must be at most 64 characters")
	case tooLong(strings.TrimSpace(req.Address), maxAddressLength):
		return models.RoomConfig{}, apperrors.NewValidationError("ADDRESS_TOO_LONG", "address must be at most 255 characters")
	}
	if req.ExamID != nil && *req.ExamID <= 0 {
		return models.RoomConfig{}, apperrors.NewValidationError("INVALID_EXAM_ID", "examId must be positive")
	}

	return NormalizeRoomConfig(models.RoomConfig{
		SeatsPerRoom: req.SeatsPerRoom,
		RoomPrefix:   strings.TrimSpace(req.RoomPrefix),
		StartRoom:    req.StartRoom,
		ExamDate:     date,
		ExamTime:     strings.TrimSpace(req.ExamTime),
		Address:      strings.TrimSpace(req.Address),
	}, s.defaults), nil
}

func (s *seatServiceImpl) prepare(ctx context.Context, actor *auth.Identity, req SeatRequest) (models.RoomConfig, []models.Application, error) {
	if err := auth.RequireRecruitment(actor); err != nil {
		return models.RoomConfig{}, nil, err
	}
	cfg, err := s.roomConfig(req)
	if err != nil {
		return models.RoomConfig{}, nil, err
	}
	apps, err := s.appRepo.ListUnassignedConfirmed(ctx, req.ExamID)
	if err != nil {
		return models.RoomConfig{}, nil, err
	}
	return cfg, apps, nil
}

func (s *seatServiceImpl) Preview(ctx context.Context, actor *auth.Identity, req SeatRequest) ([]models.RoomAssignment, error) {
	cfg, apps, err := s.prepare(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	return PlanSeats(apps, cfg), nil
}

func (s *seatServiceImpl) AssignSeats(ctx context.Context, actor *auth.Identity, req SeatRequest) (*AllocationResult, error) {
	cfg, apps, err := s.prepare(ctx, actor, req)
	if err != nil {
		return nil, err
	}

	result := &AllocationResult{Assignments: make([]models.RoomAssignment, 0, len(apps))}
	cursor := NewSeatCursor(cfg)
	assignedAt := s.now()

	for _, app := range apps {
		room, seat := cursor.Position()
		ra := models.RoomAssignment{
			ApplicationID: app.ID,
			ExamID:        app.ExamID,
			RoomNumber:    room,
			SeatNumber:    seat,
			ExamDate:      cfg.ExamDate,
			ExamTime:      cfg.ExamTime,
			Address:       cfg.Address,
			AssignedBy:    actor.UserID,
			AssignedTime:  assignedAt,
		}

		err := s.roomRepo.Create(ctx, &ra)
		switch {
		case err == nil:
			result.Assignments = append(result.Assignments, ra)
			cursor.Advance()
		case errors.Is(err, apperrors.ErrSeatAlreadyAssigned), errors.Is(err, apperrors.ErrNotConfirmed):
			// Changed since it was listed; the seat stays free for the next application.
			s.logger.Debug().Err(err).Int64("applicationID", app.ID).Msg("Skipping application during seat allocation")
		default:
			s.finish(ctx, actor, result)
			return result, err
		}
	}

	s.finish(ctx, actor, result)
	return result, nil
}

func (s *seatServiceImpl) finish(ctx context.Context, actor *auth.Identity, result *AllocationResult) {
	result.Assigned = len(result.Assignments)
	s.metrics.SeatsAssigned(result.Assigned)
	s.logger.Info().Int("assigned", result.Assigned).Int64("assignedBy", actor.UserID).Msg("Seat allocation finished")
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("assign seats (%d)", result.Assigned))
}

func (s *seatServiceImpl) MySeats(ctx context.Context, actor *auth.Identity) ([]models.RoomAssignment, error) {
	if err := auth.RequireStudent(actor); err != nil {
		return nil, err
	}
	return s.roomRepo.ListByStudent(ctx, actor.UserID)
}
