package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
)

// Unknown is the sentinel used when the client address or user agent
// cannot be determined. Absent inputs degrade to it instead of failing.
const Unknown = "unknown"

// Digest derives the one-way client identity hash from the client address,
// user agent, and the deployment salt. The same triple always yields the
// same digest; a different salt makes digests non-comparable across
// deployments. The digest is 64 lowercase hex characters.
func Digest(ip, userAgent, salt string) string {
	if ip == "" {
		ip = Unknown
	}
	if userAgent == "" {
		userAgent = Unknown
	}
	h := sha256.Sum256([]byte(ip + ":" + userAgent + ":" + salt))
	return hex.EncodeToString(h[:])
}
