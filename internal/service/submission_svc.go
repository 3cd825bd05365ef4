package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/model"
	"github.com/anto1/ds-survey/internal/repository"
)

// CooldownWindow is the rolling window inside which one identity gets one
// submission.
const CooldownWindow = 24 * time.Hour

// SubmissionStore is the persistence surface the admission pipeline needs.
type SubmissionStore interface {
	ExistsRecent(ctx context.Context, fingerprintHash string, since time.Time) (bool, error)
	Create(ctx context.Context, sub *model.Submission) error
}

// ChannelResolver resolves submitted channel ids against live channel rows.
type ChannelResolver interface {
	ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error)
}

// RequestMeta is the optional request metadata stored alongside an
// accepted submission.
type RequestMeta struct {
	UserAgent string
	Language  string
	Referrer  string
}

// SubmissionService runs the admission pipeline: an ordered list of hard
// gates where the first failure short-circuits, and only the final step
// writes. A rejection never leaves partial state.
type SubmissionService struct {
	subs     SubmissionStore
	channels ChannelResolver
	now      func() time.Time
}

func NewSubmissionService(subs SubmissionStore, channels ChannelResolver) *SubmissionService {
	return &SubmissionService{subs: subs, channels: channels, now: time.Now}
}

// Submit runs one admission attempt. Gate rejections come back in the
// result; only storage failures surface as an error.
func (s *SubmissionService) Submit(ctx context.Context, req model.SubmissionRequest, fingerprintHash string, startedAt *time.Time, meta RequestMeta) (*model.Outcome, error) {
	now := s.now()

	// Timing gate. A missing start cookie passes, a fresh one does not.
	if startedAt != nil && now.Sub(*startedAt) < middleware.MinSubmitTime {
		return model.Reject(model.ReasonTiming, "Please take your time filling out the survey"), nil
	}

	// Cooldown gate: one submission per identity per rolling day.
	exists, err := s.subs.ExistsRecent(ctx, fingerprintHash, now.Add(-CooldownWindow))
	if err != nil {
		return nil, err
	}
	if exists {
		return model.Reject(model.ReasonCooldown, "You already submitted a response. Try again tomorrow."), nil
	}

	// Parse gate: the channel lists arrive as JSON-serialized arrays.
	known, ok := middleware.ParseIDList(req.KnownChannelsRaw)
	if !ok {
		return model.Reject(model.ReasonBadPayload, "Invalid data format"), nil
	}
	watched, ok := middleware.ParseIDList(req.WatchedChannelsRaw)
	if !ok {
		return model.Reject(model.ReasonBadPayload, "Invalid data format"), nil
	}
	known = dedupe(known)
	watched = dedupe(watched)

	// Structural gates.
	if req.Website != "" {
		return model.Reject(model.ReasonHoneypot, "Invalid submission"), nil
	}
	if !middleware.AllUUIDs(known) || !middleware.AllUUIDs(watched) {
		return model.Reject(model.ReasonInvalidID, "Invalid channel id"), nil
	}
	if len(known) > middleware.MaxKnownChannels {
		return model.Reject(model.ReasonTooManyKnown, "Too many known channels selected"), nil
	}
	if len(watched) > middleware.MaxWatchedChannels {
		return model.Reject(model.ReasonTooManyWatched, "Too many watched channels selected"), nil
	}
	if req.Profession != "" && !middleware.ValidProfessions[req.Profession] {
		return model.Reject(model.ReasonBadProfession, "Unknown profession"), nil
	}
	if req.Workplace != "" && !middleware.ValidWorkplaces[req.Workplace] {
		return model.Reject(model.ReasonBadWorkplace, "Unknown workplace"), nil
	}

	// Subset gate: watched must come from the known selection. A violation
	// is rejected, never silently corrected.
	if !ValidateSubset(known, watched) {
		return model.Reject(model.ReasonSubsetViolation, "Watched channels must be selected from known channels"), nil
	}

	// Referential gate: every id must resolve to a live channel row.
	union := dedupe(append(append([]string{}, known...), watched...))
	existing, err := s.channels.ExistingIDs(ctx, union)
	if err != nil {
		return nil, err
	}
	for _, id := range union {
		if !existing[id] {
			return model.Reject(model.ReasonUnknownChannel, "Unknown channel selected"), nil
		}
	}

	// Persist: the single state-mutating step.
	sub := &model.Submission{
		ID:              uuid.NewString(),
		FingerprintHash: fingerprintHash,
		KnownChannels:   known,
		WatchedChannels: watched,
		Profession:      req.Profession,
		Workplace:       req.Workplace,
		UserAgent:       middleware.ValidateUserAgent(meta.UserAgent),
		Language:        middleware.TruncateMeta(meta.Language, middleware.MaxLanguageLen),
		Referrer:        middleware.TruncateMeta(meta.Referrer, middleware.MaxReferrerLen),
	}
	if err := s.subs.Create(ctx, sub); err != nil {
		if errors.Is(err, repository.ErrDuplicateDay) {
			// Lost the race against a concurrent identical request; report
			// it the same way as the cooldown gate.
			return model.Reject(model.ReasonCooldown, "You already submitted a response. Try again tomorrow."), nil
		}
		return nil, err
	}

	return &model.Outcome{Accepted: true}, nil
}

// CheckExisting reports whether the identity already has a submission
// inside the cooldown window.
func (s *SubmissionService) CheckExisting(ctx context.Context, fingerprintHash string) (bool, error) {
	return s.subs.ExistsRecent(ctx, fingerprintHash, s.now().Add(-CooldownWindow))
}

// ValidateSubset reports whether every watched id appears among the known
// ids.
func ValidateSubset(known, watched []string) bool {
	knownSet := make(map[string]bool, len(known))
	for _, id := range known {
		knownSet[id] = true
	}
	for _, id := range watched {
		if !knownSet[id] {
			return false
		}
	}
	return true
}

// dedupe removes duplicate ids, preserving first-seen order.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
