package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/middleware"
	"ouvidoria-ativa/internal/service"
)

// PublicHandler serves the citizen-facing submission and consultation flows.
// Callers are identified by protocol, never by internal id, and responses
// exclude staff-only fields.
type PublicHandler struct {
	manifestationService service.ManifestationService
	messageService       service.MessageService
}

func NewPublicHandler(manifestationService service.ManifestationService, messageService service.MessageService) *PublicHandler {
	return &PublicHandler{
		manifestationService: manifestationService,
		messageService:       messageService,
	}
}

// publicManifestation is the consultation view: no internal notes, no citizen
// contact data beyond what the citizen filed themselves.
type publicManifestation struct {
	Protocol         string              `json:"protocol"`
	Status           domain.Status       `json:"status"`
	Category         domain.Category     `json:"category"`
	Department       string              `json:"department"`
	Address          string              `json:"address"`
	Narrative        string              `json:"narrative"`
	OfficialResponse *string             `json:"official_response,omitempty"`
	Satisfaction     *domain.Satisfaction `json:"satisfaction,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (h *PublicHandler) Create(c *fiber.Ctx) error {
	var input domain.CreateManifestationInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	m, err := h.manifestationService.Create(c.Context(), middleware.GetActor(c), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"protocol": m.Protocol})
}

func (h *PublicHandler) Get(c *fiber.Ctx) error {
	m, err := h.manifestationService.GetByProtocol(c.Context(), c.Params("protocol"))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(publicManifestation{
		Protocol:         m.Protocol,
		Status:           m.Status,
		Category:         m.Category,
		Department:       m.Department,
		Address:          m.Address,
		Narrative:        m.Narrative,
		OfficialResponse: m.OfficialResponse,
		Satisfaction:     m.Satisfaction,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	})
}

func (h *PublicHandler) ListMessages(c *fiber.Ctx) error {
	m, err := h.manifestationService.GetByProtocol(c.Context(), c.Params("protocol"))
	if err != nil {
		return err
	}

	messages, err := h.messageService.List(c.Context(), m.ID, domain.RoleCitizen)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"messages": messages})
}

func (h *PublicHandler) SendMessage(c *fiber.Ctx) error {
	var input domain.SendCitizenMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	message, err := h.messageService.SendCitizen(c.Context(), c.Params("protocol"), input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}

func (h *PublicHandler) Finalize(c *fiber.Ctx) error {
	if err := h.manifestationService.FinalizeByCitizen(c.Context(), c.Params("protocol")); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": domain.StatusCompleted})
}

func (h *PublicHandler) RecordSatisfaction(c *fiber.Ctx) error {
	var input domain.RecordSatisfactionInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.manifestationService.RecordSatisfaction(c.Context(), c.Params("protocol"), input.Rating); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"rating": input.Rating})
}
