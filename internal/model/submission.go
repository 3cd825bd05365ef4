package model

import "time"

// Submission is one immutable accepted survey response.
type Submission struct {
	ID              string    `json:"id"`
	FingerprintHash string    `json:"-"`
	KnownChannels   []string  `json:"knownChannels"`
	WatchedChannels []string  `json:"watchedChannels"`
	Profession      string    `json:"profession,omitempty"`
	Workplace       string    `json:"workplace,omitempty"`
	UserAgent       string    `json:"-"`
	Language        string    `json:"-"`
	Referrer        string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SubmissionRequest carries the raw form fields of a survey submission.
// The two channel lists arrive as JSON-serialized arrays; Website is the
// hidden honeypot field and must be empty.
type SubmissionRequest struct {
	KnownChannelsRaw   string `json:"knownChannels" form:"knownChannels"`
	WatchedChannelsRaw string `json:"watchedChannels" form:"watchedChannels"`
	Profession         string `json:"profession" form:"profession"`
	Workplace          string `json:"workplace" form:"workplace"`
	Website            string `json:"website" form:"website"`
}

// Rejection reason codes for the admission and intake pipelines. A rejected
// attempt never leaves partial state, so re-entry is always safe.
const (
	ReasonTiming          = "timing"
	ReasonCooldown        = "cooldown"
	ReasonBadPayload      = "bad_payload"
	ReasonInvalidID       = "invalid_id"
	ReasonTooManyKnown    = "too_many_known"
	ReasonTooManyWatched  = "too_many_watched"
	ReasonHoneypot        = "honeypot"
	ReasonBadProfession   = "bad_profession"
	ReasonBadWorkplace    = "bad_workplace"
	ReasonSubsetViolation = "subset_violation"
	ReasonUnknownChannel  = "unknown_channel"
	ReasonDailyCap        = "daily_cap"
	ReasonBadName         = "bad_name"
	ReasonBadURL          = "bad_url"
	ReasonBadNote         = "bad_note"
	ReasonDuplicate       = "duplicate"
	ReasonStorage         = "storage"
)

// Outcome is the terminal outcome of one admission attempt.
// Reason and Message are set only when Accepted is false.
type Outcome struct {
	Accepted bool   `json:"accepted"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Reject builds a rejected result with a reason code and caller-facing message.
func Reject(reason, message string) *Outcome {
	return &Outcome{Accepted: false, Reason: reason, Message: message}
}

// ExistingResponse is the API response for the check-existing-submission
// read. Step tells a returning client which survey step to resume at.
type ExistingResponse struct {
	Submitted bool   `json:"submitted"`
	Step      string `json:"step"`
}
