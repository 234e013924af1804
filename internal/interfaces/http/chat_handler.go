package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sweetshop/sweet-shop-api/internal/application/chat"
	"github.com/sweetshop/sweet-shop-api/internal/application/dto"
	"github.com/sweetshop/sweet-shop-api/internal/domain"
)

// ChatHandler handles the shop assistant endpoint.
type ChatHandler struct {
	responder *chat.Responder
}

// NewChatHandler builds the handler.
func NewChatHandler(responder *chat.Responder) *ChatHandler {
	return &ChatHandler{responder: responder}
}

// Message godoc
// @Summary      Ask the shop assistant
// @Tags         chat
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Message"
// @Success      200  {object}  dto.ChatResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/chat [post]
func (h *ChatHandler) Message(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid request body"})
	}
	reply, err := h.responder.Reply(c.Context(), in.Message)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid input", Errors: vErr.Violations})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ChatResponse{Reply: reply})
}
