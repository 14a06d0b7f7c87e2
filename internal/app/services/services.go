package services

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// Clock returns the current time
type Clock func() time.Time

// SessionManager opens and closes login sessions
type SessionManager interface {
	Create(username string) string
	Revoke(token string) error
}

// AllocationDefaults fill in room settings omitted by the caller
type AllocationDefaults struct {
	SeatsPerRoom int
	RoomPrefix   string
	StartRoom    int
}

// Settings are the tunables the services read from configuration
type Settings struct {
	PasswordMinLength int
	Allocation        AllocationDefaults
}

// DefaultSettings mirrors the configuration defaults
func DefaultSettings() Settings {
	return Settings{
		PasswordMinLength: 6,
		Allocation: AllocationDefaults{
			SeatsPerRoom: DefaultSeatsPerRoom,
			RoomPrefix:   DefaultRoomPrefix,
			StartRoom:    DefaultStartRoom,
		},
	}
}

// Dependencies are shared by every service
type Dependencies struct {
	Repos    *repositories.Repositories
	Sessions SessionManager
	Metrics  *metrics.Metrics
	Logger   zerolog.Logger
	Settings Settings
	Now      Clock
}

// Services holds all the service instances
type Services struct {
	Auth         AuthService
	Exams        ExamService
	Applications ApplicationService
	Seats        SeatService
	Scores       ScoreService
	Admission    AdmissionService
}

// NewServices wires every service over the same repositories
func NewServices(deps Dependencies) *Services {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	auditor := NewAuditor(deps.Repos.Audit, deps.Metrics, deps.Logger, deps.Now)

	return &Services{
		Auth:         NewAuthService(deps.Repos.Users, deps.Sessions, auditor, deps.Metrics, deps.Settings.PasswordMinLength, deps.Logger),
		Exams:        NewExamService(deps.Repos.Exams, auditor, deps.Logger),
		Applications: NewApplicationService(deps.Repos.Applications, deps.Repos.Exams, auditor, deps.Metrics, deps.Now, deps.Logger),
		Seats:        NewSeatService(deps.Repos.Applications, deps.Repos.Rooms, auditor, deps.Metrics, deps.Settings.Allocation, deps.Now, deps.Logger),
		Scores:       NewScoreService(deps.Repos.Scores, deps.Repos.Applications, auditor, deps.Metrics, deps.Now, deps.Logger),
		Admission:    NewAdmissionService(deps.Repos.Applications, deps.Repos.Exams, deps.Repos.Scores, deps.Repos.Thresholds, auditor, deps.Metrics, deps.Now, deps.Logger),
	}
}
