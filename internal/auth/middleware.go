package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/exam-service/internal/domain"
	apperrors "github.com/spec-kit/exam-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, reconstructed statelessly
// from the token claims on every request.
type Principal struct {
	UserID string
	Role   domain.Role
}

// Middleware validates bearer tokens and attaches principals. A missing or
// malformed authorization header is reported as unauthorized; a header that
// is present but carries an invalid or expired token is forbidden. The two
// outcomes are deliberately distinct.
type Middleware struct {
	tokens *TokenManager
}

// NewMiddleware constructs middleware bound to the token manager.
func NewMiddleware(tokens *TokenManager) *Middleware {
	return &Middleware{tokens: tokens}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Verify(parts[1])
	if err != nil {
		return apperrors.NewForbidden("invalid token")
	}

	c.Locals(principalKey, &Principal{UserID: claims.UserID, Role: claims.Role})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
