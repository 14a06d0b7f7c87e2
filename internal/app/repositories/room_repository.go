package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/dberrors"
)

var roomColumns = []string{
	"ra.id", "ra.application_id", "ra.exam_id", "ra.room_number", "ra.seat_number",
	"ra.exam_date", "ra.exam_time", "ra.address", "ra.assigned_by", "ra.assigned_time",
}

// insertAssignmentSQL only inserts while the application is still confirmed.
// The row lock makes the insert wait for an in-flight decision and re-check the status.
const insertAssignmentSQL = `
	INSERT INTO room_assignments
		(application_id, exam_id, room_number, seat_number, exam_date, exam_time, address, assigned_by, assigned_time)
	SELECT a.id, a.exam_id, $2::varchar, $3::integer, $4::date, $5::varchar, $6::varchar, $7::bigint, $8::timestamptz
	FROM applications a
	WHERE a.id = $1 AND a.status = 'confirmed'
	FOR SHARE OF a
	RETURNING id, exam_id`

// RoomRepository handles database operations for room assignments
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

func scanAssignment(row pgx.Row, ra *models.RoomAssignment) error {
	return row.Scan(&ra.ID, &ra.ApplicationID, &ra.ExamID, &ra.RoomNumber, &ra.SeatNumber,
		&ra.ExamDate, &ra.ExamTime, &ra.Address, &ra.AssignedBy, &ra.AssignedTime)
}

// Create stores one seat for a confirmed application
func (r *RoomRepository) Create(ctx context.Context, ra *models.RoomAssignment) error {
	err := r.db.QueryRow(ctx, insertAssignmentSQL,
		ra.ApplicationID, ra.RoomNumber, ra.SeatNumber, ra.ExamDate, ra.ExamTime,
		ra.Address, ra.AssignedBy, ra.AssignedTime,
	).Scan(&ra.ID, &ra.ExamID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.RoomAssignmentsApplicationKey) {
			return apperrors.ErrSeatAlreadyAssigned
		}
		return notFoundOr("creating room assignment", err, apperrors.ErrNotConfirmed)
	}
	return nil
}

// GetByApplicationID retrieves the seat of an application
func (r *RoomRepository) GetByApplicationID(ctx context.Context, applicationID int64) (*models.RoomAssignment, error) {
	sql, args, err := squirrel.Select(roomColumns...).
		From("room_assignments ra").
		Where(squirrel.Eq{"ra.application_id": applicationID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError("building room assignment query", err)
	}

	var ra models.RoomAssignment
	if err := scanAssignment(r.db.QueryRow(ctx, sql, args...), &ra); err != nil {
		return nil, notFoundOr("loading room assignment", err, apperrors.ErrAssignmentNotFound)
	}
	return &ra, nil
}

// ListByStudent returns every seat held by a student's applications
func (r *RoomRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.RoomAssignment, error) {
	sql, args, err := squirrel.Select(roomColumns...).
		From("room_assignments ra").
		Join("applications a ON a.id = ra.application_id").
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("ra.assigned_time DESC", "ra.id DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError("building room assignment list", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("listing room assignments", err)
	}
	defer rows.Close()

	out := make([]models.RoomAssignment, 0)
	for rows.Next() {
		var ra models.RoomAssignment
		if err := scanAssignment(rows, &ra); err != nil {
			return nil, storageError("scanning room assignment", err)
		}
		out = append(out, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing room assignments", err)
	}
	return out, nil
}
