package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/db"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/dberrors"
)

var applicationColumns = []string{
	"a.id", "a.student_id", "a.exam_id", "a.major", "a.application_time",
	"a.status", "a.confirmed_by", "a.confirmation_time",
}

// ApplicationRepository handles database operations for applications
type ApplicationRepository struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func scanApplication(row pgx.Row, a *models.Application) error {
	return row.Scan(&a.ID, &a.StudentID, &a.ExamID, &a.Major, &a.ApplicationTime,
		&a.Status, &a.ConfirmedBy, &a.ConfirmationTime)
}

func selectApplications() squirrel.SelectBuilder {
	return squirrel.Select(applicationColumns...).
		From("applications a").
		PlaceholderFormat(squirrel.Dollar)
}

// Create inserts a pending application. The unique constraint is the final arbiter of duplicates.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	sql, args, err := squirrel.Insert("applications").
		Columns("student_id", "exam_id", "major", "application_time", "status").
		Values(app.StudentID, app.ExamID, app.Major, app.ApplicationTime, app.Status).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError("building application insert", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&app.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, dberrors.ApplicationsStudentExamKey) {
			return apperrors.ErrAlreadyApplied
		}
		return storageError("creating application", err)
	}
	return nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	return r.getOne(ctx, selectApplications().Where(squirrel.Eq{"a.id": id}))
}

// LatestByStudent returns the most recently submitted application of a student
func (r *ApplicationRepository) LatestByStudent(ctx context.Context, studentID int64) (*models.Application, error) {
	return r.getOne(ctx, selectApplications().
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.application_time DESC", "a.id DESC").
		Limit(1))
}

func (r *ApplicationRepository) getOne(ctx context.Context, query squirrel.SelectBuilder) (*models.Application, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, storageError("building application query", err)
	}

	var app models.Application
	if err := scanApplication(r.db.QueryRow(ctx, sql, args...), &app); err != nil {
		return nil, notFoundOr("loading application", err, apperrors.ErrApplicationNotFound)
	}
	return &app, nil
}

// Exists reports whether the student already applied to the exam
func (r *ApplicationRepository) Exists(ctx context.Context, studentID, examID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM applications WHERE student_id = $1 AND exam_id = $2)`,
		studentID, examID).Scan(&exists)
	if err != nil {
		return false, storageError("checking application", err)
	}
	return exists, nil
}

// ListByStudent returns the applications of a student, newest first
func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.Application, error) {
	return r.list(ctx, selectApplications().
		Where(squirrel.Eq{"a.student_id": studentID}).
		OrderBy("a.application_time DESC", "a.id DESC"))
}

// ListUnassignedConfirmed returns confirmed applications without a room assignment, oldest first
func (r *ApplicationRepository) ListUnassignedConfirmed(ctx context.Context, examID *int64) ([]models.Application, error) {
	query := selectApplications().
		LeftJoin("room_assignments ra ON ra.application_id = a.id").
		Where(squirrel.Eq{"a.status": models.StatusConfirmed}).
		Where("ra.id IS NULL").
		OrderBy("a.application_time ASC", "a.id ASC")
	if examID != nil {
		query = query.Where(squirrel.Eq{"a.exam_id": *examID})
	}
	return r.list(ctx, query)
}

func (r *ApplicationRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.Application, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, storageError("building application list", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("listing applications", err)
	}
	defer rows.Close()

	apps := make([]models.Application, 0)
	for rows.Next() {
		var app models.Application
		if err := scanApplication(rows, &app); err != nil {
			return nil, storageError("scanning application", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing applications", err)
	}
	return apps, nil
}

// UpdateDecision records a decision. When the new status is not confirmed the
// room assignment of the application is removed in the same transaction.
func (r *ApplicationRepository) UpdateDecision(ctx context.Context, id int64, decision models.Decision) (*models.Application, error) {
	var app models.Application

	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := squirrel.Update("applications").
			Set("status", decision.Status).
			Set("confirmed_by", decision.DecidedBy).
			Set("confirmation_time", decision.DecidedAt).
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING id, student_id, exam_id, major, application_time, status, confirmed_by, confirmation_time").
			PlaceholderFormat(squirrel.Dollar).
			ToSql()
		if err != nil {
			return storageError("building decision update", err)
		}

		if err := scanApplication(tx.QueryRow(ctx, sql, args...), &app); err != nil {
			return notFoundOr("updating decision", err, apperrors.ErrApplicationNotFound)
		}

		if decision.Status != models.StatusConfirmed {
			if _, err := tx.Exec(ctx, `DELETE FROM room_assignments WHERE application_id = $1`, id); err != nil {
				return storageError("releasing room assignment", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &app, nil
}
