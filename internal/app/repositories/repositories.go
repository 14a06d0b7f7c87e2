package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
)

// IUserRepository defines the interface for user-related storage operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

// IExamRepository defines storage operations for exam offerings
type IExamRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	Update(ctx context.Context, exam *models.Exam) error
	GetByID(ctx context.Context, id int64) (*models.Exam, error)
	List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error)
}

// IApplicationRepository defines storage operations for applications
type IApplicationRepository interface {
	// Create fails with apperrors.ErrAlreadyApplied when the (student, exam) pair exists.
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	Exists(ctx context.Context, studentID, examID int64) (bool, error)
	// ListByStudent returns the newest application first.
	ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error)
	LatestByStudent(ctx context.Context, studentID int64) (*models.Application, error)
	// UpdateDecision overwrites the decision. Leaving the confirmed state drops the room assignment.
	UpdateDecision(ctx context.Context, id int64, decision models.Decision) (*models.Application, error)
	// ListUnassignedConfirmed returns confirmed applications without a room assignment,
	// oldest application first.
	ListUnassignedConfirmed(ctx context.Context, examID *int64) ([]models.Application, error)
}

// IRoomRepository defines storage operations for room assignments
type IRoomRepository interface {
	// Create fails with apperrors.ErrSeatAlreadyAssigned when the application already holds a seat
	// and with apperrors.ErrNotConfirmed when the application is no longer confirmed.
	Create(ctx context.Context, assignment *models.RoomAssignment) error
	GetByApplicationID(ctx context.Context, applicationID int64) (*models.RoomAssignment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.RoomAssignment, error)
}

// IScoreRepository defines storage operations for score entries
type IScoreRepository interface {
	Create(ctx context.Context, entry *models.ScoreEntry) error
	ListByApplication(ctx context.Context, applicationID int64) ([]models.ScoreEntry, error)
}

// IThresholdRepository defines storage operations for admission thresholds
type IThresholdRepository interface {
	// Upsert inserts or overwrites the threshold for (ExamID, Major) atomically.
	Upsert(ctx context.Context, threshold *models.AdmissionThreshold) error
	Get(ctx context.Context, examID int64, major string) (*models.AdmissionThreshold, error)
}

// IAuditRepository stores audit records
type IAuditRepository interface {
	Record(ctx context.Context, entry *models.AuditEntry) error
}

// Repositories holds all the repository instances
type Repositories struct {
	Users        IUserRepository
	Exams        IExamRepository
	Applications IApplicationRepository
	Rooms        IRoomRepository
	Scores       IScoreRepository
	Thresholds   IThresholdRepository
	Audit        IAuditRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db),
		Exams:        NewExamRepository(db),
		Applications: NewApplicationRepository(db),
		Rooms:        NewRoomRepository(db),
		Scores:       NewScoreRepository(db),
		Thresholds:   NewThresholdRepository(db),
		Audit:        NewAuditRepository(db),
	}
}
