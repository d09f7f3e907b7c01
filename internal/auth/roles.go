package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/exam-service/internal/domain"
	apperrors "github.com/spec-kit/exam-service/pkg/util"
)

// RequireAuthenticated ensures a principal was attached by Handle. Exam
// delivery and submission are open to any authenticated identity.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireTeacher gates teacher-only operations such as question ingestion.
func RequireTeacher() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		switch principal.Role {
		case domain.RoleTeacher:
			return c.Next()
		case domain.RoleStudent:
			return apperrors.NewForbidden("teachers only")
		default:
			return apperrors.NewForbidden("unknown role")
		}
	}
}
