package handler

import (
	"github.com/gofiber/fiber/v2"

	"ouvidoria-ativa/internal/domain"
	"ouvidoria-ativa/internal/middleware"
	"ouvidoria-ativa/internal/service"
)

// MessageHandler serves the staff side of the per-manifestation chat.
type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) List(c *fiber.Ctx) error {
	id, err := parseManifestationID(c)
	if err != nil {
		return err
	}

	messages, err := h.messageService.List(c.Context(), id, domain.RoleStaff)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"messages": messages})
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	id, err := parseManifestationID(c)
	if err != nil {
		return err
	}

	var input domain.SendStaffMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	message, err := h.messageService.SendStaff(c.Context(), id, input, middleware.GetActor(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(message)
}
