package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
)

// ScoreRepository handles database operations for score entries
type ScoreRepository struct {
	db *pgxpool.Pool
}

// NewScoreRepository creates a new ScoreRepository
func NewScoreRepository(db *pgxpool.Pool) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create appends a score entry
func (r *ScoreRepository) Create(ctx context.Context, entry *models.ScoreEntry) error {
	sql, args, err := squirrel.Insert("score_entries").
		Columns("application_id", "subject", "score", "entered_by", "entry_time").
		Values(entry.ApplicationID, entry.Subject, entry.Score, entry.EnteredBy, entry.EntryTime).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError("building score insert", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		return storageError("creating score entry", err)
	}
	return nil
}

// ListByApplication returns the score entries of an application in entry order
func (r *ScoreRepository) ListByApplication(ctx context.Context, applicationID int64) ([]models.ScoreEntry, error) {
	sql, args, err := squirrel.Select("id", "application_id", "subject", "score", "entered_by", "entry_time").
		From("score_entries").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("entry_time ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, storageError("building score list", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageError("listing scores", err)
	}
	defer rows.Close()

	scores := make([]models.ScoreEntry, 0)
	for rows.Next() {
		var s models.ScoreEntry
		if err := rows.Scan(&s.ID, &s.ApplicationID, &s.Subject, &s.Score, &s.EnteredBy, &s.EntryTime); err != nil {
			return nil, storageError("scanning score", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("listing scores", err)
	}
	return scores, nil
}
