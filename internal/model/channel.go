package model

import "time"

// Channel statuses. A channel enters as pending via suggestion intake and
// only an admin approval flips it to approved.
const (
	ChannelPending  = "pending"
	ChannelApproved = "approved"
)

// Channel represents a design-focused video channel listed in the survey.
type Channel struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	YouTubeURL string    `json:"youtubeUrl,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChannelSuggestion is the append-only audit record of a suggestion intent.
// It is independent of the pending Channel it spawns and survives rejection.
type ChannelSuggestion struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	YouTubeURL      string    `json:"youtubeUrl,omitempty"`
	Note            string    `json:"note,omitempty"`
	FingerprintHash string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SuggestionRequest is the API request body for proposing a new channel.
type SuggestionRequest struct {
	Name       string `json:"name" form:"name"`
	YouTubeURL string `json:"youtubeUrl" form:"youtubeUrl"`
	Note       string `json:"note" form:"note"`
}

// SuggestionResponse is the API response after a suggestion is accepted.
type SuggestionResponse struct {
	Success bool     `json:"success"`
	Channel *Channel `json:"channel,omitempty"`
}

// PendingChannel is a pending channel joined with its latest suggestion
// note for the moderation queue.
type PendingChannel struct {
	Channel
	Note string `json:"note,omitempty"`
}
