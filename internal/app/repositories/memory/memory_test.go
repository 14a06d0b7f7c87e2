package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

func TestUsernameUnique(t *testing.T) {
	repos, _ := NewRepositories()
	ctx := context.Background()

	require.NoError(t, repos.Users.Create(ctx, &models.User{Username: "amy", Role: "student"}))
	err := repos.Users.Create(ctx, &models.User{Username: "amy", Role: "student"})
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
}

func TestApplicationUniqueAndDecision(t *testing.T) {
	repos, _ := NewRepositories()
	ctx := context.Background()
	now := time.Now()

	app := &models.Application{StudentID: 1, ExamID: 2, Major: "CS", ApplicationTime: now, Status: models.StatusPending}
	require.NoError(t, repos.Applications.Create(ctx, app))
	dup := &models.Application{StudentID: 1, ExamID: 2, Major: "CS", ApplicationTime: now, Status: models.StatusPending}
	assert.ErrorIs(t, repos.Applications.Create(ctx, dup), apperrors.ErrAlreadyApplied)

	err := repos.Rooms.Create(ctx, &models.RoomAssignment{ApplicationID: app.ID, RoomNumber: "A101", SeatNumber: 1})
	assert.ErrorIs(t, err, apperrors.ErrNotConfirmed, "pending applications cannot hold a seat")

	_, err = repos.Applications.UpdateDecision(ctx, app.ID, models.Decision{Status: models.StatusConfirmed, DecidedBy: 9, DecidedAt: now})
	require.NoError(t, err)
	require.NoError(t, repos.Rooms.Create(ctx, &models.RoomAssignment{ApplicationID: app.ID, RoomNumber: "A101", SeatNumber: 1}))
	err = repos.Rooms.Create(ctx, &models.RoomAssignment{ApplicationID: app.ID, RoomNumber: "A101", SeatNumber: 2})
	assert.ErrorIs(t, err, apperrors.ErrSeatAlreadyAssigned)

	updated, err := repos.Applications.UpdateDecision(ctx, app.ID, models.Decision{Status: models.StatusRejected, DecidedBy: 9, DecidedAt: now})
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, updated.Status)
	_, err = repos.Rooms.GetByApplicationID(ctx, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound, "leaving confirmed releases the seat")
}

func TestListUnassignedConfirmedOrder(t *testing.T) {
	repos, _ := NewRepositories()
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	var ids []int64
	for i, offset := range []time.Duration{2 * time.Hour, 0, time.Hour} {
		app := &models.Application{StudentID: int64(i + 1), ExamID: 7, ApplicationTime: base.Add(offset), Status: models.StatusPending}
		require.NoError(t, repos.Applications.Create(ctx, app))
		_, err := repos.Applications.UpdateDecision(ctx, app.ID, models.Decision{Status: models.StatusConfirmed, DecidedAt: base})
		require.NoError(t, err)
		ids = append(ids, app.ID)
	}

	other := int64(8)
	apps, err := repos.Applications.ListUnassignedConfirmed(ctx, &other)
	require.NoError(t, err)
	assert.Empty(t, apps)

	apps, err = repos.Applications.ListUnassignedConfirmed(ctx, nil)
	require.NoError(t, err)
	require.Len(t, apps, 3)
	assert.Equal(t, []int64{ids[1], ids[2], ids[0]}, []int64{apps[0].ID, apps[1].ID, apps[2].ID})
}

func TestThresholdUpsertOverwrites(t *testing.T) {
	repos, store := NewRepositories()
	ctx := context.Background()

	require.NoError(t, repos.Thresholds.Upsert(ctx, &models.AdmissionThreshold{ExamID: 1, Major: "CS", MinScore: 70}))
	require.NoError(t, repos.Thresholds.Upsert(ctx, &models.AdmissionThreshold{ExamID: 1, Major: "CS", MinScore: 80}))

	got, err := repos.Thresholds.Get(ctx, 1, "CS")
	require.NoError(t, err)
	assert.Equal(t, 80.0, got.MinScore)
	assert.Equal(t, 1, store.ThresholdCount())

	_, err = repos.Thresholds.Get(ctx, 1, "EE")
	assert.ErrorIs(t, err, apperrors.ErrThresholdNotFound)
}
