package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/competition-service/internal/auth"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// idParam reads the :id path parameter. Malformed ids cannot match any row,
// so they are reported as missing.
func idParam(c *fiber.Ctx, resource string) (string, error) {
	raw := c.Params("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewNotFound(resource, map[string]any{"id": raw})
	}
	return id.String(), nil
}

func actorID(c *fiber.Ctx) string {
	if p, ok := auth.PrincipalFromContext(c); ok {
		return p.User.ID
	}
	return ""
}
