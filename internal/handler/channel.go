package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/model"
	"github.com/anto1/ds-survey/internal/service"
)

type ChannelHandler struct {
	svc *service.ChannelService
}

func NewChannelHandler(svc *service.ChannelService) *ChannelHandler {
	return &ChannelHandler{svc: svc}
}

// List handles GET /api/channels
func (h *ChannelHandler) List(c fiber.Ctx) error {
	channels, err := h.svc.ListApproved(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("channel list failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load channels")
	}
	return c.JSON(fiber.Map{"channels": channels})
}

// Suggest handles POST /api/channels/suggest
func (h *ChannelHandler) Suggest(c fiber.Ctx) error {
	var req model.SuggestionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	ch, outcome, err := h.svc.Suggest(c.Context(), req, middleware.Fingerprint(c))
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("suggestion intake failed")
		Metrics.SuggestionsTotal.WithLabelValues(model.ReasonStorage).Inc()
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save suggestion")
	}
	if !outcome.Accepted {
		Metrics.SuggestionsTotal.WithLabelValues(outcome.Reason).Inc()
		return middleware.ErrorResponse(c, statusForReason(outcome.Reason), strings.ToUpper(outcome.Reason), outcome.Message)
	}

	Metrics.SuggestionsTotal.WithLabelValues("accepted").Inc()
	return c.Status(fiber.StatusCreated).JSON(model.SuggestionResponse{Success: true, Channel: ch})
}

// statusForReason maps a pipeline rejection reason to an HTTP status.
func statusForReason(reason string) int {
	switch reason {
	case model.ReasonCooldown, model.ReasonDailyCap:
		return fiber.StatusTooManyRequests
	case model.ReasonDuplicate:
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
