package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yigit/examadmission/internal/app/auth"
)

const identityKey = "identity"

// IdentityResolver resolves the Authorization header to a caller
type IdentityResolver interface {
	Resolve(ctx context.Context, header string) (*auth.Identity, error)
}

// AuthMiddleware authenticates requests against the session store
type AuthMiddleware struct {
	resolver IdentityResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver IdentityResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// Authenticate rejects requests without a live session and stores the identity in the context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := m.resolver.Resolve(c.Request.Context(), c.GetHeader("Authorization"))
		if err != nil {
			HandleAPIError(c, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by Authenticate
func CurrentIdentity(c *gin.Context) *auth.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}
