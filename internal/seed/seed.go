package seed

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	"github.com/yigit/examadmission/internal/pkg/auth"
)

// Admin describes the bootstrap system administrator
type Admin struct {
	Username string
	Password string
}

// CreateDefaultAdmin creates the system administrator account if it does not exist yet.
// Without a configured password nothing is created, so a fresh deployment has no default credentials.
func CreateDefaultAdmin(ctx context.Context, users repositories.IUserRepository, admin Admin, lgr zerolog.Logger) error {
	username := strings.TrimSpace(admin.Username)
	if username == "" || admin.Password == "" {
		lgr.Info().Msg("No seed administrator configured, skipping creation")
		return nil
	}

	_, err := users.GetByUsername(ctx, username)
	switch {
	case err == nil:
		lgr.Info().Str("username", username).Msg("Administrator already exists, skipping creation")
		return nil
	case !errors.Is(err, apperrors.ErrUserNotFound):
		return err
	}

	hashed, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Role:         string(models.RoleSystemAdmin),
	}
	if err := users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrUsernameExists) {
			return nil
		}
		return err
	}

	lgr.Info().Int64("adminID", user.ID).Str("username", username).Msg("Default administrator created")
	return nil
}
