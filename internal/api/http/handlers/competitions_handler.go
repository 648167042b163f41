package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/competition-service/internal/api/dto"
	"github.com/spec-kit/competition-service/internal/auth"
	"github.com/spec-kit/competition-service/internal/service"
	apperrors "github.com/spec-kit/competition-service/pkg/util/errorutil"
)

// CompetitionsHandler exposes listing, calendar and roster endpoints.
type CompetitionsHandler struct {
	competitions *service.CompetitionService
	rosters      *service.RosterService
}

// NewCompetitionsHandler constructs handler.
func NewCompetitionsHandler(competitions *service.CompetitionService, rosters *service.RosterService) *CompetitionsHandler {
	return &CompetitionsHandler{competitions: competitions, rosters: rosters}
}

// List handles GET /competitions.
func (h *CompetitionsHandler) List(c *fiber.Ctx) error {
	page, err := h.competitions.List(c.UserContext(), service.CompetitionQuery{
		Search:   c.Query("q"),
		League:   c.Query("league"),
		When:     c.Query("when"),
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("page_size", 0),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompetitionListResponse(page)})
}

// Get handles GET /competitions/:id.
func (h *CompetitionsHandler) Get(c *fiber.Ctx) error {
	id, err := idParam(c, "competition")
	if err != nil {
		return err
	}
	comp, err := h.competitions.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	if p, ok := auth.PrincipalFromContext(c); ok && p.IsAdmin() {
		return c.JSON(fiber.Map{"data": dto.NewCompetitionAdminResponse(comp)})
	}
	return c.JSON(fiber.Map{"data": dto.NewCompetitionResponse(comp)})
}

// Athletes handles GET /competitions/:id/athletes.
func (h *CompetitionsHandler) Athletes(c *fiber.Ctx) error {
	id, err := idParam(c, "competition")
	if err != nil {
		return err
	}
	r, err := h.rosters.GetRoster(c.UserContext(), id, c.Query("tag"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewRosterResponse(r)})
}

// Calendar handles GET /calendar.
func (h *CompetitionsHandler) Calendar(c *fiber.Ctx) error {
	evs, err := h.competitions.Calendar(c.UserContext(), c.Query("league"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCalendarResponse(evs)})
}

// Create handles POST /competitions.
func (h *CompetitionsHandler) Create(c *fiber.Ctx) error {
	var req service.CompetitionInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comp, err := h.competitions.Create(c.UserContext(), actorID(c), req)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCompetitionAdminResponse(comp)})
}

// Update handles PUT /competitions/:id.
func (h *CompetitionsHandler) Update(c *fiber.Ctx) error {
	id, err := idParam(c, "competition")
	if err != nil {
		return err
	}
	var req service.CompetitionInput
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comp, err := h.competitions.Update(c.UserContext(), actorID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCompetitionAdminResponse(comp)})
}

// Delete handles DELETE /competitions/:id.
func (h *CompetitionsHandler) Delete(c *fiber.Ctx) error {
	id, err := idParam(c, "competition")
	if err != nil {
		return err
	}
	if err := h.competitions.Delete(c.UserContext(), actorID(c), id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
