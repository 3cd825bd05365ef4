package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/anto1/ds-survey/internal/middleware"
	"github.com/anto1/ds-survey/internal/model"
	"github.com/anto1/ds-survey/pkg/slug"
)

// ChannelStore is the persistence surface for channels and their
// moderation queue.
type ChannelStore interface {
	ListByStatus(ctx context.Context, status string) ([]model.Channel, error)
	ExistsBySlugOrURL(ctx context.Context, slug, url string) (bool, error)
	CreateWithSuggestion(ctx context.Context, ch *model.Channel, sug *model.ChannelSuggestion) error
	Approve(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	ListPending(ctx context.Context) ([]model.PendingChannel, error)
}

// SuggestionCounter counts recent suggestions per identity for the daily cap.
type SuggestionCounter interface {
	CountRecentByFingerprint(ctx context.Context, fingerprintHash string, since time.Time) (int, error)
}

// ChannelService serves the approved channel list and runs suggestion
// intake and moderation.
type ChannelService struct {
	channels    ChannelStore
	suggestions SuggestionCounter
	cache       *CacheService
	now         func() time.Time
}

func NewChannelService(channels ChannelStore, suggestions SuggestionCounter, cache *CacheService) *ChannelService {
	return &ChannelService{channels: channels, suggestions: suggestions, cache: cache, now: time.Now}
}

// ListApproved returns the approved channels ordered by name.
// Cache-aside: check Redis first, fall back to DB, then populate the cache.
func (s *ChannelService) ListApproved(ctx context.Context) ([]model.Channel, error) {
	if s.cache != nil {
		cached, err := s.cache.GetChannelList(ctx)
		if err != nil {
			middleware.Logger.Warn().Err(err).Msg("cache: channel list get error")
		} else if cached != nil {
			return cached, nil
		}
	}

	channels, err := s.channels.ListByStatus(ctx, model.ChannelApproved)
	if err != nil {
		return nil, err
	}
	if channels == nil {
		channels = []model.Channel{}
	}

	if s.cache != nil {
		if err := s.cache.SetChannelList(ctx, channels); err != nil {
			middleware.Logger.Warn().Err(err).Msg("cache: channel list set error")
		}
	}
	return channels, nil
}

// Suggest runs the suggestion intake pipeline: daily cap, field validation,
// slug derivation and dedupe, then one transactional write producing the
// pending channel and its audit row. Rejections come back in the outcome;
// only storage failures surface as an error.
func (s *ChannelService) Suggest(ctx context.Context, req model.SuggestionRequest, fingerprintHash string) (*model.Channel, *model.Outcome, error) {
	// Daily cap per identity.
	count, err := s.suggestions.CountRecentByFingerprint(ctx, fingerprintHash, s.now().Add(-CooldownWindow))
	if err != nil {
		return nil, nil, err
	}
	if count >= middleware.MaxSuggestionsPerDay {
		msg := fmt.Sprintf("Maximum %d channel suggestions per day", middleware.MaxSuggestionsPerDay)
		return nil, model.Reject(model.ReasonDailyCap, msg), nil
	}

	// Field validation.
	name, errMsg := middleware.ValidateSuggestionName(req.Name)
	if errMsg != "" {
		return nil, model.Reject(model.ReasonBadName, errMsg), nil
	}
	url, errMsg := middleware.ValidateSuggestionURL(req.YouTubeURL)
	if errMsg != "" {
		return nil, model.Reject(model.ReasonBadURL, errMsg), nil
	}
	note, errMsg := middleware.ValidateNote(req.Note)
	if errMsg != "" {
		return nil, model.Reject(model.ReasonBadNote, errMsg), nil
	}

	// Slug dedupe against existing channels (by slug or exact URL).
	channelSlug := slug.Make(name)
	if channelSlug == "" {
		return nil, model.Reject(model.ReasonBadName, "Channel name must contain letters or digits"), nil
	}
	exists, err := s.channels.ExistsBySlugOrURL(ctx, channelSlug, url)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, model.Reject(model.ReasonDuplicate, "This channel already exists"), nil
	}

	ch := &model.Channel{
		ID:         uuid.NewString(),
		Name:       name,
		Slug:       channelSlug,
		YouTubeURL: url,
		Status:     model.ChannelPending,
		CreatedAt:  s.now(),
	}
	sug := &model.ChannelSuggestion{
		ID:              uuid.NewString(),
		Name:            name,
		YouTubeURL:      url,
		Note:            note,
		FingerprintHash: fingerprintHash,
	}
	if err := s.channels.CreateWithSuggestion(ctx, ch, sug); err != nil {
		return nil, nil, err
	}

	return ch, &model.Outcome{Accepted: true}, nil
}

// Approve flips a pending channel to approved (idempotent) and drops the
// cached channel list.
func (s *ChannelService) Approve(ctx context.Context, id string) (bool, error) {
	found, err := s.channels.Approve(ctx, id)
	if err != nil || !found {
		return found, err
	}
	s.invalidateList(ctx)
	return true, nil
}

// Reject hard-deletes a channel; the suggestion audit trail is untouched.
func (s *ChannelService) Reject(ctx context.Context, id string) (bool, error) {
	found, err := s.channels.Delete(ctx, id)
	if err != nil || !found {
		return found, err
	}
	s.invalidateList(ctx)
	return true, nil
}

// ListPending returns the moderation queue.
func (s *ChannelService) ListPending(ctx context.Context) ([]model.PendingChannel, error) {
	pending, err := s.channels.ListPending(ctx)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		pending = []model.PendingChannel{}
	}
	return pending, nil
}

func (s *ChannelService) invalidateList(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateChannelList(ctx); err != nil {
		middleware.Logger.Warn().Err(err).Msg("cache: channel list invalidate error")
	}
}
