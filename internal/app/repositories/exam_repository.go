package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/helpers"
)

var examColumns = []string{"id", "exam_name", "exam_type", "exam_time", "exam_major", "candidate_count", "remarks"}

// ExamRepository handles database operations for exam offerings
type ExamRepository struct {
	db *pgxpool.Pool
}

// NewExamRepository creates a new ExamRepository
func NewExamRepository(db *pgxpool.Pool) *ExamRepository {
	return &ExamRepository{db: db}
}

func scanExam(row pgx.Row, e *models.Exam) error {
	return row.Scan(&e.ID, &e.Name, &e.Type, &e.Time, &e.Major, &e.CandidateCount, &e.Remarks)
}

// Create inserts an exam offering
func (r *ExamRepository) Create(ctx context.Context, exam *models.Exam) error {
	sql, args, err := squirrel.Insert("exams").
		Columns("exam_name", "exam_type", "exam_time", "exam_major", "candidate_count", "remarks").
		Values(exam.Name, exam.Type, exam.Time, exam.Major, exam.CandidateCount, exam.Remarks).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError("building exam insert", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&exam.ID); err != nil {
		return storageError("creating exam", err)
	}
	return nil
}

// Update replaces every editable field of an exam offering
func (r *ExamRepository) Update(ctx context.Context, exam *models.Exam) error {
	sql, args, err := squirrel.Update("exams").
		SetMap(map[string]interface{}{
			"exam_name":       exam.Name,
			"exam_type":       exam.Type,
			"exam_time":       exam.Time,
			"exam_major":      exam.Major,
			"candidate_count": exam.CandidateCount,
			"remarks":         exam.Remarks,
		}).
		Where(squirrel.Eq{"id": exam.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError("building exam update", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageError("updating exam", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrExamNotFound
	}
	return nil
}

// GetByID retrieves an exam offering by ID
func (r *ExamRepository) GetByID(ctx context.Context, id int64) (*models.Exam, error) {
	sql, args, err := squirrel.Select(examColumns...).
		From("exams").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError("building exam query", err)
	}

	var exam models.Exam
	if err := scanExam(r.db.QueryRow(ctx, sql, args...), &exam); err != nil {
		return nil, notFoundOr("loading exam", err, apperrors.ErrExamNotFound)
	}
	return &exam, nil
}

// List returns exam offerings matching the filter ordered by exam time
func (r *ExamRepository) List(ctx context.Context, filter models.ExamFilter) ([]models.Exam, error) {
	query := squirrel.Select(examColumns...).
		From("exams").
		OrderBy("exam_time ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Year > 0 {
		from, to := helpers.YearBounds(filter.Year)
		query = query.Where(squirrel.GtOrEq{"exam_time": from}).Where(squirrel.Lt{"exam_time": to})
	}
	if filter.Type != "" {
		query = query.Where(squirrel.Eq{"exam_type": filter.Type})
	}
	if filter.Major != "" {
		query = query.Where(squirrel.ILike{"exam_major": "%" + filter.Major + "%"})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, storageError("building exam list", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("listing exams", err)
	}
	defer rows.Close()

	exams := make([]models.Exam, 0)
	for rows.Next() {
		var exam models.Exam
		if err := scanExam(rows, &exam); err != nil {
			return nil, storageError("scanning exam", err)
		}
		exams = append(exams, exam)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing exams", err)
	}
	return exams, nil
}
