package handler

import (
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/anto1/ds-survey/internal/auth"
	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/service"
)

type AdminHandler struct {
	tokens   *auth.TokenService
	channels *service.ChannelService
}

func NewAdminHandler(tokens *auth.TokenService, channels *service.ChannelService) *AdminHandler {
	return &AdminHandler{tokens: tokens, channels: channels}
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

// Login handles POST /api/admin/login
func (h *AdminHandler) Login(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	if !h.tokens.CheckPassword(req.Password) {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "Invalid credentials")
	}

	token, expiresAt := h.tokens.IssueSession()
	return c.JSON(fiber.Map{
		"token":     token,
		"expiresAt": expiresAt,
	})
}

// Pending handles GET /api/admin/channels/pending
func (h *AdminHandler) Pending(c fiber.Ctx) error {
	pending, err := h.channels.ListPending(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("moderation queue load failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load moderation queue")
	}
	return c.JSON(fiber.Map{"channels": pending})
}

// Approve handles POST /api/admin/channels/:id/approve
func (h *AdminHandler) Approve(c fiber.Ctx) error {
	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Invalid channel id")
	}

	found, err := h.channels.Approve(c.Context(), id)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("channel approve failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to approve channel")
	}
	if !found {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Reject handles DELETE /api/admin/channels/:id
func (h *AdminHandler) Reject(c fiber.Ctx) error {
	id := c.Params("id")
	if uuid.Validate(id) != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", "Invalid channel id")
	}

	found, err := h.channels.Reject(c.Context(), id)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("channel reject failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reject channel")
	}
	if !found {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", "Channel not found")
	}
	return c.JSON(fiber.Map{"success": true})
}
