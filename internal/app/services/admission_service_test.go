package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

func TestEvaluateVerdict(t *testing.T) {
	app := models.Application{ID: 1, ExamID: 1, Major: "CS"}
	scores := func(vals ...float64) []models.ScoreEntry {
		out := make([]models.ScoreEntry, 0, len(vals))
		for _, v := range vals {
			out = append(out, models.ScoreEntry{Score: v})
		}
		return out
	}
	threshold := &models.AdmissionThreshold{ExamID: 1, Major: "CS", MinScore: 80}

	tests := []struct {
		name      string
		scores    []models.ScoreEntry
		threshold *models.AdmissionThreshold
		want      models.VerdictStatus
		total     float64
	}{
		{"no threshold is unpublished", scores(50, 45), nil, models.VerdictUnpublished, 95},
		{"below threshold", scores(40, 39), threshold, models.VerdictNotAdmitted, 79},
		{"boundary is inclusive", scores(40, 40), threshold, models.VerdictAdmitted, 80},
		{"no scores total zero", nil, threshold, models.VerdictNotAdmitted, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := EvaluateVerdict(app, tt.scores, tt.threshold)
			assert.Equal(t, tt.want, v.Status)
			assert.Equal(t, tt.total, v.Total)
			if tt.threshold == nil {
				assert.Nil(t, v.MinScore)
			} else {
				require.NotNil(t, v.MinScore)
				assert.Equal(t, tt.threshold.MinScore, *v.MinScore)
			}
		})
	}
}

func TestSetThresholdUpsertIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exam := env.exam(t, "CS")
	rec := env.user(t, "rec", models.RoleRecruitAdmin)

	for i := 0; i < 2; i++ {
		_, err := env.svc.Admission.SetThreshold(ctx, rec, exam.ID, "CS", ptr(80.0))
		require.NoError(t, err)
	}
	assert.Equal(t, 1, env.store.ThresholdCount())

	_, err := env.svc.Admission.SetThreshold(ctx, rec, exam.ID, "CS", ptr(60.0))
	require.NoError(t, err)
	got, err := env.repos.Thresholds.Get(ctx, exam.ID, "CS")
	require.NoError(t, err)
	assert.Equal(t, 60.0, got.MinScore, "last writer wins")
	assert.Equal(t, 1, env.store.ThresholdCount())
}

func TestSetThresholdValidationAndGating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exam := env.exam(t, "CS")
	rec := env.user(t, "rec", models.RoleRecruitAdmin)
	sys := env.user(t, "sys", models.RoleSystemAdmin)
	student := env.user(t, "stu", models.RoleStudent)

	_, err := env.svc.Admission.SetThreshold(ctx, student, exam.ID, "CS", ptr(80.0))
	assert.ErrorIs(t, err, apperrors.ErrRecruitmentRequired)
	assert.Equal(t, 0, env.store.ThresholdCount())

	_, err = env.svc.Admission.SetThreshold(ctx, rec, 0, "CS", ptr(80.0))
	assert.Equal(t, "EXAM_ID_REQUIRED", apperrors.ReasonCode(err))

	_, err = env.svc.Admission.SetThreshold(ctx, rec, exam.ID, "  ", ptr(80.0))
	assert.Equal(t, "MAJOR_REQUIRED", apperrors.ReasonCode(err))

	_, err = env.svc.Admission.SetThreshold(ctx, rec, exam.ID, "CS", nil)
	assert.Equal(t, "MIN_SCORE_REQUIRED", apperrors.ReasonCode(err))

	_, err = env.svc.Admission.SetThreshold(ctx, rec, 9999, "CS", ptr(80.0))
	assert.ErrorIs(t, err, apperrors.ErrExamNotFound)

	_, err = env.svc.Admission.SetThreshold(ctx, sys, exam.ID, "CS", ptr(80.0))
	assert.NoError(t, err)
}

func TestVerdictForStudent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exam := env.exam(t, "CS")
	rec := env.user(t, "rec", models.RoleRecruitAdmin)
	student := env.user(t, "s1", models.RoleStudent)

	_, err := env.svc.Admission.ForStudent(ctx, student)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	app, err := env.svc.Applications.Submit(ctx, student, exam.ID)
	require.NoError(t, err)
	for _, v := range []float64{50, 45} {
		_, err := env.svc.Scores.EnterScore(ctx, rec, app.ID, "Math", ptr(v))
		require.NoError(t, err)
	}

	res, err := env.svc.Admission.ForStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictUnpublished, res.Verdict.Status, "95 points but nothing published")
	assert.Equal(t, 95.0, res.Verdict.Total)
	assert.Len(t, res.Scores, 2)
	require.NotNil(t, res.Exam)

	_, err = env.svc.Admission.SetThreshold(ctx, rec, exam.ID, "CS", ptr(96.0))
	require.NoError(t, err)
	res, err = env.svc.Admission.ForStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictNotAdmitted, res.Verdict.Status)

	_, err = env.svc.Admission.SetThreshold(ctx, rec, exam.ID, "CS", ptr(95.0))
	require.NoError(t, err)
	res, err = env.svc.Admission.ForStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, models.VerdictAdmitted, res.Verdict.Status, "verdicts are recomputed on every read")
}

func TestVerdictUsesMostRecentApplication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	first := env.exam(t, "CS")
	second := env.exam(t, "EE")
	rec := env.user(t, "rec", models.RoleRecruitAdmin)
	student := env.user(t, "s1", models.RoleStudent)

	_, err := env.svc.Applications.Submit(ctx, student, first.ID)
	require.NoError(t, err)
	latest, err := env.svc.Applications.Submit(ctx, student, second.ID)
	require.NoError(t, err)
	_, err = env.svc.Admission.SetThreshold(ctx, rec, first.ID, "CS", ptr(0.0))
	require.NoError(t, err)

	res, err := env.svc.Admission.ForStudent(ctx, student)
	require.NoError(t, err)
	assert.Equal(t, latest.ID, res.Application.ID)
	assert.Equal(t, models.VerdictUnpublished, res.Verdict.Status, "the threshold belongs to another exam")

	results, err := env.svc.Admission.ResultsForStudent(ctx, student)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, models.VerdictUnpublished, results[0].Verdict.Status)
	assert.Equal(t, models.VerdictAdmitted, results[1].Verdict.Status)
}

func TestVerdictForApplicationOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	exam := env.exam(t, "CS")
	rec := env.user(t, "rec", models.RoleRecruitAdmin)
	owner := env.user(t, "owner", models.RoleStudent)
	other := env.user(t, "other", models.RoleStudent)

	app, err := env.svc.Applications.Submit(ctx, owner, exam.ID)
	require.NoError(t, err)

	_, err = env.svc.Admission.ForApplication(ctx, owner, app.ID)
	assert.NoError(t, err)
	_, err = env.svc.Admission.ForApplication(ctx, rec, app.ID)
	assert.NoError(t, err)
	_, err = env.svc.Admission.ForApplication(ctx, other, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotOwner)
	_, err = env.svc.Admission.ForApplication(ctx, rec, 777)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}
