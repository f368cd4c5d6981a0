package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Field separator inside the fingerprint preimage; keeps adjacent
// fields from colliding ("ab"+"c" vs "a"+"bc").
const fingerprintSep = "\x1f"

// Fingerprint derives the stable dedup identifier for a raw item from
// its normalized identity fields. Re-ingesting the same logical item
// always yields the same value, which is what makes ingestion
// idempotent.
func Fingerprint(title, url, source string) string {
	h := sha256.New()
	h.Write([]byte(normalizeIdentity(title)))
	h.Write([]byte(fingerprintSep))
	h.Write([]byte(normalizeIdentity(url)))
	h.Write([]byte(fingerprintSep))
	h.Write([]byte(normalizeIdentity(source)))

	return hex.EncodeToString(h.Sum(nil))
}

func normalizeIdentity(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
