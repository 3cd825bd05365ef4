package fingerprint

import (
	"regexp"
	"testing"
)

var hexRe = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestDigest_Deterministic(t *testing.T) {
	a := Digest("203.0.113.7", "Mozilla/5.0", "salt-1")
	b := Digest("203.0.113.7", "Mozilla/5.0", "salt-1")
	if a != b {
		t.Errorf("same inputs produced different digests: %s vs %s", a, b)
	}
	if !hexRe.MatchString(a) {
		t.Errorf("digest %q is not 64 lowercase hex chars", a)
	}
}

func TestDigest_InputSensitivity(t *testing.T) {
	base := Digest("203.0.113.7", "Mozilla/5.0", "salt-1")
	tests := []struct {
		name string
		ip   string
		ua   string
		salt string
	}{
		{"different ip", "203.0.113.8", "Mozilla/5.0", "salt-1"},
		{"different user agent", "203.0.113.7", "curl/8.0", "salt-1"},
		{"different salt", "203.0.113.7", "Mozilla/5.0", "salt-2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Digest(tt.ip, tt.ua, tt.salt); got == base {
				t.Error("changing an input did not change the digest")
			}
		})
	}
}

func TestDigest_SentinelForAbsentInputs(t *testing.T) {
	if Digest("", "Mozilla/5.0", "s") != Digest(Unknown, "Mozilla/5.0", "s") {
		t.Error("empty ip should degrade to the unknown sentinel")
	}
	if Digest("203.0.113.7", "", "s") != Digest("203.0.113.7", Unknown, "s") {
		t.Error("empty user agent should degrade to the unknown sentinel")
	}
}
