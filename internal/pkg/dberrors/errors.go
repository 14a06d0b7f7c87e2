package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn" // Import pgconn for PgError
)

const uniqueViolation = "23505"

// Unique constraint names declared by the schema migration.
const (
	UsersUsernameKey              = "users_username_key"
	ApplicationsStudentExamKey    = "applications_student_exam_key"
	RoomAssignmentsApplicationKey = "room_assignments_application_id_key"
	ThresholdsExamMajorKey        = "admission_thresholds_exam_major_key"
)

// IsDuplicateConstraintError checks if the error is a PostgreSQL unique violation error
// for a specific constraint.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == constraintName
}

// IsUniqueViolation reports any unique violation regardless of the constraint.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
