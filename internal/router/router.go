package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/anto1/ds-survey/internal/auth"
	"github.com/anto1/ds-survey/internal/config"
	"github.com/anto1/ds-survey/internal/handler"
	"github.com/anto1/ds-survey/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Channel    *handler.ChannelHandler
	Submission *handler.SubmissionHandler
	Admin      *handler.AdminHandler
	Stats      *handler.StatsHandler
	Health     *handler.HealthHandler
	Export     *handler.ExportHandler
}

// Setup configures the middleware stack and all API routes on the given
// Fiber app. The admin group is registered only when a token service is
// configured.
func Setup(app *fiber.App, h *Handlers, cfg *config.Config, tokens *auth.TokenService) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(handler.MetricsMiddleware())
	app.Use(middleware.NewCORS(cfg.CORSOrigins))
	app.Use(middleware.NewIdentity(cfg.FingerprintSalt))

	// Health checks and metrics (before API group, no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	api := app.Group("/api")

	// Loading the channel list is the survey's first contact, so the
	// start-timestamp cookie is planted there.
	api.Get("/channels", h.Channel.List,
		middleware.NewChannelListRateLimiter().Handler(),
		middleware.NewSurveyStart(cfg.Environment))
	api.Post("/channels/suggest", h.Channel.Suggest,
		middleware.NewSuggestRateLimiter().Handler())

	api.Post("/submissions", h.Submission.Submit,
		middleware.NewSubmitRateLimiter().Handler())
	api.Get("/submissions/me", h.Submission.Existing)

	if tokens == nil {
		return
	}

	admin := api.Group("/admin")
	admin.Post("/login", h.Admin.Login,
		middleware.NewAdminLoginRateLimiter().Handler())

	authed := admin.Group("", middleware.NewAdminAuth(tokens))
	authed.Get("/channels/pending", h.Admin.Pending)
	authed.Post("/channels/:id/approve", h.Admin.Approve)
	authed.Delete("/channels/:id", h.Admin.Reject)
	authed.Get("/stats", h.Stats.GetStats)
	authed.Get("/export", h.Export.Export)
}
