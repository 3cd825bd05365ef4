package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
)

// SurveyStartCookie records when the client first loaded the survey. The
// admission pipeline's timing gate reads it; absence is treated as a pass.
const SurveyStartCookie = "survey_start"

// surveyStartMaxAge is the cookie lifetime in seconds (1 hour).
const surveyStartMaxAge = 3600

// NewSurveyStart returns a middleware that sets the survey start timestamp
// cookie on first contact: httpOnly, SameSite lax, secure outside
// development.
func NewSurveyStart(environment string) fiber.Handler {
	secure := environment == "production"
	return func(c fiber.Ctx) error {
		if c.Cookies(SurveyStartCookie) == "" {
			c.Cookie(&fiber.Cookie{
				Name:     SurveyStartCookie,
				Value:    strconv.FormatInt(time.Now().UnixMilli(), 10),
				MaxAge:   surveyStartMaxAge,
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		return c.Next()
	}
}

// SurveyStartedAt parses the survey start cookie. Returns nil when the
// cookie is absent or unreadable.
func SurveyStartedAt(c fiber.Ctx) *time.Time {
	raw := c.Cookies(SurveyStartCookie)
	if raw == "" {
		return nil
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	t := time.UnixMilli(ms)
	return &t
}
