package artifact

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer strips unsafe HTML from summaries before they land in the
// published feed.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer creates a Sanitizer with the feed summary policy.
func NewSanitizer() *Sanitizer {
	// UGCPolicy keeps harmless formatting (p, a, strong, em).
	p := bluemonday.UGCPolicy()

	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)

	return &Sanitizer{policy: p}
}

// Clean sanitizes html and trims surrounding whitespace.
func (s *Sanitizer) Clean(html string) string {
	return strings.TrimSpace(s.policy.Sanitize(html))
}
