package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yigit/examadmission/internal/app/auth"
	"github.com/yigit/examadmission/internal/app/models"
	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
	pkgauth "github.com/yigit/examadmission/internal/pkg/auth"
	"github.com/yigit/examadmission/internal/pkg/metrics"
)

// LoginResult is returned by a successful login
type LoginResult struct {
	Token       string
	User        *models.User
	DisplayRole string
}

// AuthService defines account and session operations
type AuthService interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, authHeader string) error
	CreateUser(ctx context.Context, actor *auth.Identity, username, password, role string) (*models.User, error)
	ResetPassword(ctx context.Context, actor *auth.Identity, userID int64, newPassword string) error
}

type authServiceImpl struct {
	userRepo          repositories.IUserRepository
	sessions          SessionManager
	auditor           Auditor
	metrics           *metrics.Metrics
	passwordMinLength int
	logger            zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	sessions SessionManager,
	auditor Auditor,
	m *metrics.Metrics,
	passwordMinLength int,
	logger zerolog.Logger,
) AuthService {
	return &authServiceImpl{
		userRepo:          userRepo,
		sessions:          sessions,
		auditor:           auditor,
		metrics:           m,
		passwordMinLength: passwordMinLength,
		logger:            logger,
	}
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return apperrors.NewValidationError("USERNAME_REQUIRED", "username cannot be empty")
	}
	if tooLong(strings.TrimSpace(username), maxUsernameLength) {
		return apperrors.NewValidationError("USERNAME_TOO_LONG", "username must be at most 50 characters")
	}
	return nil
}

func (s *authServiceImpl) createUser(ctx context.Context, username, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := pkgauth.ValidatePassword(password, s.passwordMinLength); err != nil {
		return nil, err
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{Username: username, PasswordHash: hash, Role: string(role)}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Register creates a student account. The role is always student.
func (s *authServiceImpl) Register(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.createUser(ctx, username, password, models.RoleStudent)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("username", user.Username).Msg("Student registered")
	s.auditor.Record(ctx, user.ID, "register")
	return user, nil
}

// Login verifies credentials and opens a session
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.metrics.Login("unknown_user")
		}
		return nil, err
	}

	if !pkgauth.CheckPassword(user.PasswordHash, password) {
		s.metrics.Login("wrong_password")
		s.logger.Warn().Str("username", user.Username).Msg("Login rejected: wrong password")
		return nil, apperrors.ErrWrongPassword
	}

	token := s.sessions.Create(user.Username)
	s.metrics.Login("success")
	s.auditor.Record(ctx, user.ID, "login")

	return &LoginResult{
		Token:       token,
		User:        user,
		DisplayRole: auth.LegacyDisplayRole(user.Role),
	}, nil
}

// Logout revokes the session named by the Authorization header
func (s *authServiceImpl) Logout(ctx context.Context, authHeader string) error {
	token, err := auth.BearerToken(authHeader)
	if err != nil {
		return err
	}
	return s.sessions.Revoke(token)
}

// CreateUser lets a system administrator create an account of any known role
func (s *authServiceImpl) CreateUser(ctx context.Context, actor *auth.Identity, username, password, role string) (*models.User, error) {
	if err := auth.RequireSystemAdmin(actor); err != nil {
		return nil, err
	}
	parsed, ok := models.ParseRole(role)
	if !ok {
		return nil, apperrors.ErrInvalidRole
	}

	user, err := s.createUser(ctx, username, password, parsed)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("actorID", actor.UserID).Int64("userID", user.ID).Str("role", user.Role).Msg("User created")
	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("create user %s (%s)", user.Username, user.Role))
	return user, nil
}

// ResetPassword sets a new password for any user
func (s *authServiceImpl) ResetPassword(ctx context.Context, actor *auth.Identity, userID int64, newPassword string) error {
	if err := auth.RequireRecruitment(actor); err != nil {
		return err
	}
	if err := pkgauth.ValidatePassword(newPassword, s.passwordMinLength); err != nil {
		return err
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.auditor.Record(ctx, actor.UserID, fmt.Sprintf("reset password of user %d", userID))
	return nil
}
