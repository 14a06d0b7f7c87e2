package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yigit/examadmission/internal/app/models"
)

// AuditRepository writes to the system_logs table
type AuditRepository struct {
	db *pgxpool.Pool
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record stores one audit entry
func (r *AuditRepository) Record(ctx context.Context, entry *models.AuditEntry) error {
	sql, args, err := squirrel.Insert("system_logs").
		Columns("user_id", "action", "log_time", "ip_address").
		Values(entry.UserID, entry.Action, entry.LogTime, entry.IPAddress).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return storageError("building audit insert", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&entry.ID); err != nil {
		return storageError("recording audit entry", err)
	}
	return nil
}
