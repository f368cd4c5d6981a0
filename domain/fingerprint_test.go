package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_Deterministic(t *testing.T) {
	a := Fingerprint("Go 1.26 released", "https://go.dev/blog/go1.26", "golang-blog")
	b := Fingerprint("Go 1.26 released", "https://go.dev/blog/go1.26", "golang-blog")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "hex-encoded sha256")
}

func TestFingerprint_NormalizesCaseAndWhitespace(t *testing.T) {
	base := Fingerprint("Go 1.26 released", "https://go.dev/blog/go1.26", "golang-blog")

	tests := map[string]struct {
		title  string
		url    string
		source string
	}{
		"upper case title":      {"GO 1.26 RELEASED", "https://go.dev/blog/go1.26", "golang-blog"},
		"surrounding space":     {"  Go 1.26 released \n", "https://go.dev/blog/go1.26", "golang-blog"},
		"mixed case url":        {"Go 1.26 released", "HTTPS://GO.DEV/blog/go1.26", "golang-blog"},
		"padded source":         {"Go 1.26 released", "https://go.dev/blog/go1.26", " Golang-Blog "},
		"everything normalized": {"\tgo 1.26 released", " https://go.dev/blog/go1.26", "GOLANG-BLOG"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, base, Fingerprint(tc.title, tc.url, tc.source))
		})
	}
}

func TestFingerprint_DistinctItemsDiffer(t *testing.T) {
	a := Fingerprint("Go 1.26 released", "https://go.dev/blog/go1.26", "golang-blog")

	assert.NotEqual(t, a, Fingerprint("Go 1.27 released", "https://go.dev/blog/go1.26", "golang-blog"))
	assert.NotEqual(t, a, Fingerprint("Go 1.26 released", "https://go.dev/blog/go1.27", "golang-blog"))
	assert.NotEqual(t, a, Fingerprint("Go 1.26 released", "https://go.dev/blog/go1.26", "hn"))
}

func TestFingerprint_FieldBoundariesDoNotCollide(t *testing.T) {
	// The separator keeps content shifting across field boundaries from
	// producing the same preimage.
	a := Fingerprint("ab", "c", "s")
	b := Fingerprint("a", "bc", "s")

	assert.NotEqual(t, a, b)
}
