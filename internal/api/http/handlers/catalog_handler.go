package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/competition-service/internal/api/dto"
	"github.com/spec-kit/competition-service/internal/service"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// CatalogHandler serves gyms and league pages.
type CatalogHandler struct {
	gyms *service.GymService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(gyms *service.GymService) *CatalogHandler {
	return &CatalogHandler{gyms: gyms}
}

// Gyms handles GET /gyms.
func (h *CatalogHandler) Gyms(c *fiber.Ctx) error {
	gyms, err := h.gyms.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewGymList(gyms)})
}

// CreateGym handles POST /gyms.
func (h *CatalogHandler) CreateGym(c *fiber.Ctx) error {
	var req service.GymInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	gym, err := h.gyms.Create(c.UserContext(), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewGymResponse(gym)})
}

// Leagues handles GET /leagues.
func (h *CatalogHandler) Leagues(c *fiber.Ctx) error {
	leagues := service.Leagues()
	out := make([]dto.LeagueResponse, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, dto.NewLeagueResponse(service.LeagueInfo(l.Code)))
	}
	return c.JSON(fiber.Map{"data": out})
}

// League handles GET /leagues/:code. Unknown codes get a placeholder page.
func (h *CatalogHandler) League(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": dto.NewLeagueResponse(service.LeagueInfo(c.Params("code")))})
}
