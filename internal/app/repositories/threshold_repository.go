package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

// ThresholdRepository handles database operations for admission thresholds
type ThresholdRepository struct {
	db *pgxpool.Pool
}

// NewThresholdRepository creates a new ThresholdRepository
func NewThresholdRepository(db *pgxpool.Pool) *ThresholdRepository {
	return &ThresholdRepository{db: db}
}

// Upsert writes the threshold, overwriting any existing row for the same exam and major
func (r *ThresholdRepository) Upsert(ctx context.Context, t *models.AdmissionThreshold) error {
	sql, args, err := squirrel.Insert("admission_thresholds").
		Columns("exam_id", "major", "min_score", "set_by", "set_time").
		Values(t.ExamID, t.Major, t.MinScore, t.SetBy, t.SetTime).
		Suffix(`ON CONFLICT (exam_id, major) DO UPDATE
			SET min_score = EXCLUDED.min_score, set_by = EXCLUDED.set_by, set_time = EXCLUDED.set_time`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError("building threshold upsert", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return storageError("upserting threshold", err)
	}
	return nil
}

// Get returns the threshold for an exam and major
func (r *ThresholdRepository) Get(ctx context.Context, examID int64, major string) (*models.AdmissionThreshold, error) {
	sql, args, err := squirrel.Select("exam_id", "major", "min_score", "set_by", "set_time").
		From("admission_thresholds").
		Where(squirrel.Eq{"exam_id": examID, "major": major}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError("building threshold query", err)
	}

	var t models.AdmissionThreshold
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.ExamID, &t.Major, &t.MinScore, &t.SetBy, &t.SetTime)
	if err != nil {
		return nil, notFoundOr("loading threshold", err, apperrors.ErrThresholdNotFound)
	}
	return &t, nil
}
