package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

func TestOversizedFieldsAreValidationErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rec := env.user(t, "rec", models.RoleRecruitAdmin)
	exam := env.exam(t, "CS")
	app := env.confirmed(t, rec, "kim", exam)

	long := func(n int) string { return strings.Repeat("x", n) }

	_, err := env.svc.Auth.Register(ctx, long(51), "secret1")
	assert.Equal(t, "USERNAME_TOO_LONG", apperrors.ReasonCode(err))

	// multi-byte characters count once
	_, err = env.svc.Auth.Register(ctx, strings.Repeat("é", 50), "secret1")
	assert.NoError(t, err)

	newExam := func() *models.Exam {
		return &models.Exam{Name: "Entrance", Type: "written", Major: "EE", Time: time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)}
	}
	tests := []struct {
		reason string
		mutate func(e *models.Exam)
	}{
		{"EXAM_NAME_TOO_LONG", func(e *models.Exam) { e.Name = long(101) }},
		{"EXAM_TYPE_TOO_LONG", func(e *models.Exam) { e.Type = long(51) }},
		{"MAJOR_TOO_LONG", func(e *models.Exam) { e.Major = long(101) }},
	}
	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			e := newExam()
			tt.mutate(e)
			err := env.svc.Exams.Create(ctx, rec, e)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Equal(t, tt.reason, apperrors.ReasonCode(err))
		})
	}

	_, err = env.svc.Admission.SetThreshold(ctx, rec, exam.ID, long(101), ptr(60.0))
	assert.Equal(t, "MAJOR_TOO_LONG", apperrors.ReasonCode(err))

	_, err = env.svc.Scores.EnterScore(ctx, rec, app.ID, long(101), ptr(60.0))
	assert.Equal(t, "SUBJECT_TOO_LONG", apperrors.ReasonCode(err))

	_, err = env.svc.Seats.AssignSeats(ctx, rec, SeatRequest{Address: long(256)})
	assert.Equal(t, "ADDRESS_TOO_LONG", apperrors.ReasonCode(err))

	_, err = env.svc.Seats.Preview(ctx, rec, SeatRequest{RoomPrefix: long(17)})
	assert.Equal(t, "ROOM_PREFIX_TOO_LONG", apperrors.ReasonCode(err))

	seat, err := env.repos.Rooms.GetByApplicationID(ctx, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	assert.Nil(t, seat)
}
