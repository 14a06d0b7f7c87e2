package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/logger"
)

// storageError logs a driver failure and wraps it as a storage error
func storageError(op string, err error) error {
	logger.Error().Err(err).Str("operation", op).Msg("Database operation failed")
	return apperrors.NewStorageError(op, err)
}

// notFoundOr maps pgx.ErrNoRows to notFound and anything else to a storage error
func notFoundOr(op string, err error, notFound error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	return storageError(op, err)
}
