package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/model"
	"github.com/anto1/ds-survey/internal/service"
)

type SubmissionHandler struct {
	svc *service.SubmissionService
}

func NewSubmissionHandler(svc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Submit handles POST /api/submissions
func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
	var req model.SubmissionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	meta := service.RequestMeta{
		UserAgent: middleware.UserAgent(c),
		Language:  c.Get(fiber.HeaderAcceptLanguage),
		Referrer:  c.Get(fiber.HeaderReferer),
	}

	outcome, err := h.svc.Submit(c.Context(), req, middleware.Fingerprint(c), middleware.SurveyStartedAt(c), meta)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("submission admission failed")
		Metrics.SubmissionsTotal.WithLabelValues(model.ReasonStorage).Inc()
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save submission")
	}
	if !outcome.Accepted {
		Metrics.SubmissionsTotal.WithLabelValues(outcome.Reason).Inc()
		return middleware.ErrorResponse(c, statusForReason(outcome.Reason), strings.ToUpper(outcome.Reason), outcome.Message)
	}

	Metrics.SubmissionsTotal.WithLabelValues("accepted").Inc()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true})
}

// Existing handles GET /api/submissions/me — tells a returning client
// whether its identity already submitted inside the cooldown window and
// which survey step to resume at.
func (h *SubmissionHandler) Existing(c fiber.Ctx) error {
	submitted, err := h.svc.CheckExisting(c.Context(), middleware.Fingerprint(c))
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("submission status check failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to check submission status")
	}

	step := model.StepAwareness
	if submitted {
		step = model.StepComplete
	}
	return c.JSON(model.ExistingResponse{Submitted: submitted, Step: string(step)})
}
