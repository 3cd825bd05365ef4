package middleware

import (
	"strings"
	"testing"
)

func TestValidateSuggestionName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"minimum length", "ab", "ab", false},
		{"single char", "a", "", true},
		{"empty", "", "", true},
		{"only whitespace", "   ", "", true},
		{"trims whitespace", "  The Futur  ", "The Futur", false},
		{"whitespace around single char", " a ", "", true},
		{"exactly 80", strings.Repeat("x", 80), strings.Repeat("x", 80), false},
		{"81 chars", strings.Repeat("x", 81), "", true},
		{"80 cyrillic runes", strings.Repeat("ж", 80), strings.Repeat("ж", 80), false},
		{"81 cyrillic runes", strings.Repeat("ж", 81), "", true},
		{"two runes multi-byte", "жж", "жж", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateSuggestionName(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Error("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSuggestionURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty is fine", "", false},
		{"youtube handle", "https://www.youtube.com/@thefutur", false},
		{"bare youtube", "https://youtube.com/@thefutur", false},
		{"mobile youtube", "https://m.youtube.com/@thefutur", false},
		{"short link", "https://youtu.be/abc", false},
		{"http scheme", "http://www.youtube.com/@thefutur", false},
		{"host case insensitive", "https://WWW.YOUTUBE.COM/@thefutur", false},
		{"other host", "https://vimeo.com/channel", true},
		{"lookalike host", "https://youtube.com.evil.io/x", true},
		{"no scheme", "www.youtube.com/@thefutur", true},
		{"ftp scheme", "ftp://youtube.com/x", true},
		{"garbage", "not a url at all ://", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errMsg := ValidateSuggestionURL(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Error("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
		})
	}
}

func TestValidateNote(t *testing.T) {
	got, errMsg := ValidateNote("  I <b>love</b> this channel  ")
	if errMsg != "" {
		t.Fatalf("unexpected error: %s", errMsg)
	}
	if got != "I blove/b this channel" {
		t.Errorf("angle brackets should be stripped, got %q", got)
	}

	if _, errMsg := ValidateNote(strings.Repeat("n", 501)); errMsg == "" {
		t.Error("note over 500 characters should be rejected")
	}
	if _, errMsg := ValidateNote(strings.Repeat("n", 500)); errMsg != "" {
		t.Errorf("note of exactly 500 characters should pass: %s", errMsg)
	}
	if _, errMsg := ValidateNote(strings.Repeat("ж", 500)); errMsg != "" {
		t.Errorf("length cap counts runes, not bytes: %s", errMsg)
	}
	if _, errMsg := ValidateNote(strings.Repeat("ж", 501)); errMsg == "" {
		t.Error("note over 500 runes should be rejected")
	}
}

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{"empty string", "", 0, true},
		{"empty array", "[]", 0, true},
		{"two ids", `["a","b"]`, 2, true},
		{"malformed json", `["a",`, 0, false},
		{"wrong type", `{"a":1}`, 0, false},
		{"not json", "a,b,c", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, ok := ParseIDList(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && len(ids) != tt.want {
				t.Errorf("len = %d, want %d", len(ids), tt.want)
			}
		})
	}
}

func TestAllUUIDs(t *testing.T) {
	valid := []string{
		"6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"6ba7b811-9dad-11d1-80b4-00c04fd430c8",
	}
	if !AllUUIDs(valid) {
		t.Error("well-formed UUIDs should pass")
	}
	if !AllUUIDs(nil) {
		t.Error("empty list should pass")
	}
	if AllUUIDs([]string{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", "c1"}) {
		t.Error("a malformed id should fail the whole list")
	}
}

func TestValidateUserAgent(t *testing.T) {
	long := strings.Repeat("u", 600)
	if got := ValidateUserAgent(long); len(got) != MaxUserAgentLen {
		t.Errorf("len = %d, want %d", len(got), MaxUserAgentLen)
	}
	if got := ValidateUserAgent("  Mozilla/5.0  "); got != "Mozilla/5.0" {
		t.Errorf("got %q, want trimmed", got)
	}
}
