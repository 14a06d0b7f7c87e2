package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/yigit/examadmission/internal/app/repositories"
	"github.com/yigit/examadmission/internal/pkg/apperrors"
)

const bearerPrefix = "Bearer "

// SessionLookup resolves a token to the username that owns it
type SessionLookup interface {
	Resolve(token string) (string, bool)
}

// IdentityResolver turns an Authorization header into an Identity
type IdentityResolver struct {
	sessions SessionLookup
	users    repositories.IUserRepository
}

// NewIdentityResolver creates a resolver over a session store and the user repository
func NewIdentityResolver(sessions SessionLookup, users repositories.IUserRepository) *IdentityResolver {
	return &IdentityResolver{sessions: sessions, users: users}
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", apperrors.ErrTokenMissing
	}
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", apperrors.ErrTokenInvalid
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", apperrors.ErrTokenInvalid
	}
	return token, nil
}

// Resolve authenticates the header. The role is read from the user store on every call,
// so role changes apply to live sessions immediately.
func (r *IdentityResolver) Resolve(ctx context.Context, header string) (*Identity, error) {
	token, err := BearerToken(header)
	if err != nil {
		return nil, err
	}

	username, ok := r.sessions.Resolve(token)
	if !ok {
		return nil, apperrors.ErrTokenInvalid
	}

	user, err := r.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, err
	}

	return &Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
