package analysis

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

// ExtractText converts an HTML fragment (a feed entry description or
// body) into plain text suitable for the analyzer. Script, style and
// navigation elements are dropped and whitespace is normalized. Plain
// input passes through untouched apart from normalization.
func ExtractText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if !strings.Contains(trimmed, "<") {
		return normalizeWhitespace(trimmed)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(trimmed))
	if err != nil {
		return normalizeWhitespace(trimmed)
	}

	doc.Find("script, style, nav, iframe, noscript").Remove()

	return normalizeWhitespace(doc.Text())
}

func normalizeWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastSpace := true
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
			continue
		}

		b.WriteRune(r)
		lastSpace = false
	}

	return strings.TrimSpace(b.String())
}
