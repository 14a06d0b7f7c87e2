package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

func TestRegisterForcesStudentRole(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, err := env.svc.Auth.Register(ctx, "  lin  ", "123456")
	require.NoError(t, err)
	assert.Equal(t, "lin", user.Username)
	assert.Equal(t, string(models.RoleStudent), user.Role)
	assert.NotEqual(t, "123456", user.PasswordHash)

	_, err = env.svc.Auth.Register(ctx, "lin", "abcdef")
	assert.ErrorIs(t, err, apperrors.ErrUsernameExists)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Auth.Register(ctx, "short", "12345")
	assert.ErrorIs(t, err, apperrors.ErrPasswordTooShort)

	_, err = env.svc.Auth.Register(ctx, "   ", "123456")
	assert.Equal(t, "USERNAME_REQUIRED", apperrors.ReasonCode(err))
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Auth.Register(ctx, "mei", "secret1")
	require.NoError(t, err)

	_, err = env.svc.Auth.Login(ctx, "nobody", "secret1")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = env.svc.Auth.Login(ctx, "mei", "wrong!!")
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)
	assert.Equal(t, apperrors.KindUnauthenticated, apperrors.KindOf(err))

	res, err := env.svc.Auth.Login(ctx, "mei", "secret1")
	require.NoError(t, err)
	assert.Equal(t, auth.DisplayRoleStudent, res.DisplayRole)

	username, ok := env.sessions.Resolve(res.Token)
	require.True(t, ok)
	assert.Equal(t, "mei", username)

	var logins int
	for _, e := range env.store.AuditEntries() {
		if e.Action == "login" {
			logins++
		}
	}
	assert.Equal(t, 1, logins)
}

func TestLoginDisplayRoleForAdmins(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sys := env.user(t, "root", models.RoleSystemAdmin)

	_, err := env.svc.Auth.CreateUser(ctx, sys, "rec", "123456", "RECRUITMENT_ADMIN")
	require.NoError(t, err)

	res, err := env.svc.Auth.Login(ctx, "rec", "123456")
	require.NoError(t, err)
	assert.Equal(t, auth.DisplayRoleAdmin, res.DisplayRole)
	assert.Equal(t, string(models.RoleRecruitAdmin), res.User.Role)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Auth.Register(ctx, "zhao", "123456")
	require.NoError(t, err)
	res, err := env.svc.Auth.Login(ctx, "zhao", "123456")
	require.NoError(t, err)

	require.NoError(t, env.svc.Auth.Logout(ctx, "Bearer "+res.Token))
	_, ok := env.sessions.Resolve(res.Token)
	assert.False(t, ok)

	err = env.svc.Auth.Logout(ctx, "Bearer "+res.Token)
	assert.ErrorIs(t, err, apperrors.ErrSessionNotFound)

	err = env.svc.Auth.Logout(ctx, "")
	assert.ErrorIs(t, err, apperrors.ErrTokenMissing)
}

func TestCreateUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sys := env.user(t, "root", models.RoleSystemAdmin)
	rec := env.user(t, "rec", models.RoleRecruitAdmin)

	_, err := env.svc.Auth.CreateUser(ctx, rec, "x", "123456", "student")
	assert.ErrorIs(t, err, apperrors.ErrSystemAdminRequired)

	_, err = env.svc.Auth.CreateUser(ctx, sys, "x", "123456", "superuser")
	assert.ErrorIs(t, err, apperrors.ErrInvalidRole)

	u, err := env.svc.Auth.CreateUser(ctx, sys, "x", "123456", " System_Admin ")
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleSystemAdmin), u.Role)
}

func TestResetPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	rec := env.user(t, "rec", models.RoleRecruitAdmin)

	user, err := env.svc.Auth.Register(ctx, "wu", "123456")
	require.NoError(t, err)
	student := &auth.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}

	assert.ErrorIs(t, env.svc.Auth.ResetPassword(ctx, student, user.ID, "654321"), apperrors.ErrRecruitmentRequired)
	assert.ErrorIs(t, env.svc.Auth.ResetPassword(ctx, rec, user.ID, "123"), apperrors.ErrPasswordTooShort)
	assert.ErrorIs(t, env.svc.Auth.ResetPassword(ctx, rec, 9999, "654321"), apperrors.ErrUserNotFound)

	require.NoError(t, env.svc.Auth.ResetPassword(ctx, rec, user.ID, "654321"))
	_, err = env.svc.Auth.Login(ctx, "wu", "654321")
	assert.NoError(t, err)
}
