package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, ""},
		{"reason unauthenticated", ErrTokenInvalid, KindUnauthenticated},
		{"reason forbidden", ErrRecruitmentRequired, KindForbidden},
		{"wrapped validation", fmt.Errorf("%w: major cannot be empty", ErrValidationFailed), KindValidation},
		{"reason conflict", ErrAlreadyApplied, KindConflict},
		{"reason not found", ErrExamNotFound, KindNotFound},
		{"storage", NewStorageError("inserting row", errors.New("connection reset")), KindStorage},
		{"unknown", errors.New("boom"), KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestReasonCode(t *testing.T) {
	assert.Equal(t, "ALREADY_APPLIED", ReasonCode(fmt.Errorf("submit: %w", ErrAlreadyApplied)))
	assert.Equal(t, "VALIDATION_ERROR", ReasonCode(fmt.Errorf("%w: bad", ErrValidationFailed)))
	assert.Equal(t, "STORAGE_FAILURE", ReasonCode(NewStorageError("reading", errors.New("eof"))))
}

func TestStorageErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageError("loading user", cause)

	assert.ErrorIs(t, err, ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestWithDetailsDoesNotMutateShared(t *testing.T) {
	detailed := ErrAlreadyApplied.WithDetails(map[string]interface{}{"examId": 7})

	assert.Nil(t, ErrAlreadyApplied.Details)
	assert.ErrorIs(t, detailed, ErrAlreadyApplied)
	assert.ErrorIs(t, detailed, ErrConflict)
	assert.NotErrorIs(t, detailed, ErrUsernameExists)
}
