package handler

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/model"
)

// SubmissionLister provides the full submission dump for the export.
type SubmissionLister interface {
	ListAll(ctx context.Context) ([]model.Submission, error)
}

type ExportHandler struct {
	subs SubmissionLister
}

func NewExportHandler(subs SubmissionLister) *ExportHandler {
	return &ExportHandler{subs: subs}
}

// Export handles GET /api/admin/export
// Streams every submission as CSV, newest first. Channel id lists are
// semicolon-joined inside their cell.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	subs, err := h.subs.ListAll(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("submission export failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export submissions")
	}

	data, err := buildSubmissionCSV(subs)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to build export")
	}

	filename := "submissions-" + time.Now().UTC().Format("20060102") + ".csv"
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+filename)
	return c.Send(data)
}

func buildSubmissionCSV(subs []model.Submission) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{
		"id", "created_at", "profession", "workplace",
		"known_channels", "watched_channels", "language", "referrer",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, s := range subs {
		record := []string{
			s.ID,
			s.CreatedAt.UTC().Format(time.RFC3339),
			s.Profession,
			s.Workplace,
			strings.Join(s.KnownChannels, ";"),
			strings.Join(s.WatchedChannels, ";"),
			s.Language,
			s.Referrer,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
