package middleware

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Survey policy limits.
const (
	MaxKnownChannels     = 40
	MaxWatchedChannels   = 25
	MaxSuggestionsPerDay = 5
	MinSubmitTime        = 4 * time.Second

	MinNameLen      = 2
	MaxNameLen      = 80
	MaxNoteLen      = 500
	MaxUserAgentLen = 500
	MaxReferrerLen  = 500
	MaxLanguageLen  = 120
)

// allowedVideoHosts is the fixed allow-list of video-platform domains a
// suggested channel URL may point at.
var allowedVideoHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// ValidProfessions is the closed vocabulary for the profession answer.
var ValidProfessions = map[string]bool{
	"product":    true,
	"graphic":    true,
	"marketer":   true,
	"copywriter": true,
	"developer":  true,
	"other":      true,
}

// ValidWorkplaces is the closed vocabulary for the workplace answer.
var ValidWorkplaces = map[string]bool{
	"inhouse":   true,
	"agency":    true,
	"freelance": true,
	"other":     true,
}

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateSuggestionName checks the proposed channel name: 2-80 characters
// after trimming. Lengths count runes, not bytes, so non-ASCII names get
// the same budget.
func ValidateSuggestionName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLen {
		return "", "Channel name must be at least 2 characters"
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", "Channel name must be at most 80 characters"
	}
	return name, ""
}

// ValidateSuggestionURL checks an optional channel URL: when present it must
// parse and its host must be a known video-platform domain.
func ValidateSuggestionURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", "Invalid YouTube URL"
	}
	if !allowedVideoHosts[strings.ToLower(u.Hostname())] {
		return "", "Invalid YouTube URL"
	}
	return raw, ""
}

// ValidateNote trims a free-text note, strips angle brackets, and enforces
// the length cap.
func ValidateNote(note string) (string, string) {
	note = strings.TrimSpace(note)
	note = strings.ReplaceAll(note, "<", "")
	note = strings.ReplaceAll(note, ">", "")
	if utf8.RuneCountInString(note) > MaxNoteLen {
		return "", "Note must be at most 500 characters"
	}
	return note, ""
}

// ParseIDList decodes a JSON-serialized array of channel ids. An empty
// value decodes to an empty list; malformed input reports failure rather
// than panicking upstream.
func ParseIDList(raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return []string{}, true
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, false
	}
	return ids, true
}

// AllUUIDs reports whether every id in the list is a well-formed UUID.
func AllUUIDs(ids []string) bool {
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return false
		}
	}
	return true
}

// ValidateUserAgent trims and truncates a user agent for storage.
func ValidateUserAgent(ua string) string {
	ua = strings.TrimSpace(ua)
	if len(ua) > MaxUserAgentLen {
		ua = ua[:MaxUserAgentLen]
	}
	return ua
}

// TruncateMeta trims and truncates optional request metadata.
func TruncateMeta(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
