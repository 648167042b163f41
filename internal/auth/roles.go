package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// RequireAdmin ensures the authenticated caller is an administrator.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.IsAdmin() {
			return apperrors.NewForbidden("admin access required")
		}
		return c.Next()
	}
}
