package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/middleware"
	"ouvidoria-ativa/internal/service"
)

// ManifestationHandler serves the staff triage surface.
type ManifestationHandler struct {
	manifestationService service.ManifestationService
}

func NewManifestationHandler(manifestationService service.ManifestationService) *ManifestationHandler {
	return &ManifestationHandler{manifestationService: manifestationService}
}

func (h *ManifestationHandler) List(c *fiber.Ctx) error {
	filter := domain.ManifestationFilter{
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		Department: c.Query("department"),
		Identity:   c.Query("identity"),
		Period:     domain.ParsePeriod(c.Query("period")),
	}
	params := getPaginationParams(c)

	result, err := h.manifestationService.List(c.Context(), filter, params)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *ManifestationHandler) Departments(c *fiber.Ctx) error {
	departments, err := h.manifestationService.Departments(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"departments": departments})
}

func (h *ManifestationHandler) Get(c *fiber.Ctx) error {
	id, err := parseManifestationID(c)
	if err != nil {
		return err
	}

	m, err := h.manifestationService.GetByID(c.Context(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(m)
}

func (h *ManifestationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseManifestationID(c)
	if err != nil {
		return err
	}

	var input domain.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	m, err := h.manifestationService.ChangeStatus(c.Context(), id, input.Status, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(m)
}

func (h *ManifestationHandler) RecordResponse(c *fiber.Ctx) error {
	id, err := parseManifestationID(c)
	if err != nil {
		return err
	}

	var input domain.RecordResponseInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	m, err := h.manifestationService.RecordResponse(c.Context(), id, input, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(m)
}

func (h *ManifestationHandler) Finalize(c *fiber.Ctx) error {
	id, err := parseManifestationID(c)
	if err != nil {
		return err
	}

	if err := h.manifestationService.FinalizeByStaff(c.Context(), id, middleware.GetActor(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": domain.StatusCompleted})
}

func parseManifestationID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid manifestation ID")
	}
	return id, nil
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 10); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}
