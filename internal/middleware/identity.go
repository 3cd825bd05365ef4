package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/anto1/ds-survey/pkg/fingerprint"
)

// Locals keys set by the identity middleware.
const (
	LocalFingerprint = "fingerprint"
	LocalUserAgent   = "userAgent"
)

// ClientIP extracts the best-effort client address. Proxy headers are
// consulted in priority order before falling back to the socket peer;
// an empty result degrades to the "unknown" sentinel.
func ClientIP(c fiber.Ctx) string {
	if fwd := c.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if real := strings.TrimSpace(c.Get("X-Real-IP")); real != "" {
		return real
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return fingerprint.Unknown
}

// NewIdentity returns a middleware that computes the request's client
// fingerprint once and stashes it (plus the user agent) in locals.
func NewIdentity(salt string) fiber.Handler {
	return func(c fiber.Ctx) error {
		ua := c.Get(fiber.HeaderUserAgent)
		c.Locals(LocalFingerprint, fingerprint.Digest(ClientIP(c), ua, salt))
		c.Locals(LocalUserAgent, ua)
		return c.Next()
	}
}

// Fingerprint returns the identity digest computed by NewIdentity.
func Fingerprint(c fiber.Ctx) string {
	if fp, ok := c.Locals(LocalFingerprint).(string); ok {
		return fp
	}
	return ""
}

// UserAgent returns the raw user agent captured by NewIdentity.
func UserAgent(c fiber.Ctx) string {
	if ua, ok := c.Locals(LocalUserAgent).(string); ok {
		return ua
	}
	return ""
}
