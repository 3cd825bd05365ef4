package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/anto1/ds-survey/internal/model"
)

type fakeChannelStore struct {
	channels    []model.Channel
	suggestions []model.ChannelSuggestion
	approved    map[string]bool
	deleted     map[string]bool
}

func newFakeChannelStore() *fakeChannelStore {
	return &fakeChannelStore{
		approved: make(map[string]bool),
		deleted:  make(map[string]bool),
	}
}

func (f *fakeChannelStore) ListByStatus(_ context.Context, status string) ([]model.Channel, error) {
	var out []model.Channel
	for _, ch := range f.channels {
		if ch.Status == status {
			out = append(out, ch)
		}
	}
	return out, nil
}

func (f *fakeChannelStore) ExistsBySlugOrURL(_ context.Context, slug, url string) (bool, error) {
	for _, ch := range f.channels {
		if ch.Slug == slug || (url != "" && ch.YouTubeURL == url) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChannelStore) CreateWithSuggestion(_ context.Context, ch *model.Channel, sug *model.ChannelSuggestion) error {
	f.channels = append(f.channels, *ch)
	f.suggestions = append(f.suggestions, *sug)
	return nil
}

func (f *fakeChannelStore) Approve(_ context.Context, id string) (bool, error) {
	for i, ch := range f.channels {
		if ch.ID == id {
			f.channels[i].Status = model.ChannelApproved
			f.approved[id] = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChannelStore) Delete(_ context.Context, id string) (bool, error) {
	for i, ch := range f.channels {
		if ch.ID == id {
			f.channels = append(f.channels[:i], f.channels[i+1:]...)
			f.deleted[id] = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeChannelStore) ListPending(_ context.Context) ([]model.PendingChannel, error) {
	var out []model.PendingChannel
	for _, ch := range f.channels {
		if ch.Status == model.ChannelPending {
			out = append(out, model.PendingChannel{Channel: ch})
		}
	}
	return out, nil
}

type fakeSuggestionCounter struct {
	count int
}

func (f *fakeSuggestionCounter) CountRecentByFingerprint(_ context.Context, _ string, _ time.Time) (int, error) {
	return f.count, nil
}

func newIntake() (*ChannelService, *fakeChannelStore, *fakeSuggestionCounter) {
	store := newFakeChannelStore()
	counter := &fakeSuggestionCounter{}
	return NewChannelService(store, counter, nil), store, counter
}

func TestSuggest_HappyPath(t *testing.T) {
	svc, store, _ := newIntake()

	req := model.SuggestionRequest{
		Name:       "The Futur",
		YouTubeURL: "https://www.youtube.com/@thefutur",
		Note:       "great channel",
	}
	ch, outcome, err := svc.Suggest(context.Background(), req, "fp-1")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !outcome.Accepted {
		t.Fatalf("expected accepted, got %s: %s", outcome.Reason, outcome.Message)
	}

	if ch.Slug != "the-futur" {
		t.Errorf("slug = %q, want the-futur", ch.Slug)
	}
	if ch.Status != model.ChannelPending {
		t.Errorf("status = %q, want pending", ch.Status)
	}

	if len(store.channels) != 1 || len(store.suggestions) != 1 {
		t.Fatalf("expected 1 channel + 1 audit row, got %d/%d", len(store.channels), len(store.suggestions))
	}
	if store.suggestions[0].FingerprintHash != "fp-1" {
		t.Errorf("audit fingerprint = %q, want fp-1", store.suggestions[0].FingerprintHash)
	}
	if store.suggestions[0].Name != "The Futur" {
		t.Errorf("audit name = %q, want The Futur", store.suggestions[0].Name)
	}
}

func TestSuggest_FieldValidation(t *testing.T) {
	tests := []struct {
		name       string
		req        model.SuggestionRequest
		wantReason string
	}{
		{"name length 1", model.SuggestionRequest{Name: "a"}, model.ReasonBadName},
		{"name length 81", model.SuggestionRequest{Name: strings.Repeat("x", 81)}, model.ReasonBadName},
		{"name only punctuation", model.SuggestionRequest{Name: "!?"}, model.ReasonBadName},
		{"bad url host", model.SuggestionRequest{Name: "Some Channel", YouTubeURL: "https://vimeo.com/x"}, model.ReasonBadURL},
		{"unparseable url", model.SuggestionRequest{Name: "Some Channel", YouTubeURL: "://nope"}, model.ReasonBadURL},
		{"note too long", model.SuggestionRequest{Name: "Some Channel", Note: strings.Repeat("n", 501)}, model.ReasonBadNote},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, _ := newIntake()
			_, outcome, err := svc.Suggest(context.Background(), tt.req, "fp-1")
			if err != nil {
				t.Fatalf("Suggest: %v", err)
			}
			if outcome.Accepted {
				t.Fatal("expected rejection")
			}
			if outcome.Reason != tt.wantReason {
				t.Errorf("reason = %s, want %s", outcome.Reason, tt.wantReason)
			}
			if len(store.channels) != 0 || len(store.suggestions) != 0 {
				t.Error("rejection must not write")
			}
		})
	}
}

func TestSuggest_MinimumNameLength(t *testing.T) {
	svc, _, _ := newIntake()
	_, outcome, err := svc.Suggest(context.Background(), model.SuggestionRequest{Name: "ab"}, "fp-1")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if !outcome.Accepted {
		t.Errorf("two-character name should be accepted, got %s", outcome.Reason)
	}
}

func TestSuggest_DuplicateSlug(t *testing.T) {
	svc, store, _ := newIntake()
	store.channels = append(store.channels, model.Channel{
		ID: "existing", Name: "The Futur", Slug: "the-futur", Status: model.ChannelApproved,
	})

	// Same name with different punctuation derives the same slug.
	_, outcome, err := svc.Suggest(context.Background(), model.SuggestionRequest{Name: "the FUTUR!"}, "fp-1")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if outcome.Accepted || outcome.Reason != model.ReasonDuplicate {
		t.Fatalf("expected duplicate rejection, got %+v", outcome)
	}
}

func TestSuggest_DuplicateURL(t *testing.T) {
	svc, store, _ := newIntake()
	store.channels = append(store.channels, model.Channel{
		ID: "existing", Name: "The Futur", Slug: "the-futur",
		YouTubeURL: "https://www.youtube.com/@thefutur", Status: model.ChannelApproved,
	})

	req := model.SuggestionRequest{Name: "Futur Reupload", YouTubeURL: "https://www.youtube.com/@thefutur"}
	_, outcome, err := svc.Suggest(context.Background(), req, "fp-1")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if outcome.Accepted || outcome.Reason != model.ReasonDuplicate {
		t.Fatalf("expected duplicate rejection, got %+v", outcome)
	}
}

func TestSuggest_DailyCap(t *testing.T) {
	svc, _, counter := newIntake()

	counter.count = 4
	_, outcome, err := svc.Suggest(context.Background(), model.SuggestionRequest{Name: "Channel Five"}, "fp-1")
	if err != nil || !outcome.Accepted {
		t.Fatalf("fifth suggestion should be accepted, got %+v err %v", outcome, err)
	}

	counter.count = 5
	_, outcome, err = svc.Suggest(context.Background(), model.SuggestionRequest{Name: "Channel Six"}, "fp-1")
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if outcome.Accepted || outcome.Reason != model.ReasonDailyCap {
		t.Fatalf("expected daily cap rejection, got %+v", outcome)
	}
}

func TestModeration_ApproveIdempotent(t *testing.T) {
	svc, store, _ := newIntake()
	store.channels = append(store.channels, model.Channel{ID: "ch-1", Status: model.ChannelPending})

	for i := 0; i < 2; i++ {
		found, err := svc.Approve(context.Background(), "ch-1")
		if err != nil || !found {
			t.Fatalf("approve pass %d: found=%v err=%v", i+1, found, err)
		}
	}
	if store.channels[0].Status != model.ChannelApproved {
		t.Error("channel should be approved")
	}

	found, err := svc.Approve(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if found {
		t.Error("approving a missing id should report not found")
	}
}

func TestModeration_Reject(t *testing.T) {
	svc, store, _ := newIntake()
	store.channels = append(store.channels, model.Channel{ID: "ch-1", Status: model.ChannelPending})
	store.suggestions = append(store.suggestions, model.ChannelSuggestion{ID: "sug-1", Name: "x"})

	found, err := svc.Reject(context.Background(), "ch-1")
	if err != nil || !found {
		t.Fatalf("Reject: found=%v err=%v", found, err)
	}
	if len(store.channels) != 0 {
		t.Error("channel row should be deleted")
	}
	if len(store.suggestions) != 1 {
		t.Error("audit trail must survive rejection")
	}
}

func TestListApproved_FiltersByStatus(t *testing.T) {
	svc, store, _ := newIntake()
	store.channels = []model.Channel{
		{ID: "a", Name: "Approved One", Status: model.ChannelApproved},
		{ID: "b", Name: "Pending One", Status: model.ChannelPending},
	}

	channels, err := svc.ListApproved(context.Background())
	if err != nil {
		t.Fatalf("ListApproved: %v", err)
	}
	if len(channels) != 1 || channels[0].ID != "a" {
		t.Errorf("expected only the approved channel, got %v", channels)
	}
}
