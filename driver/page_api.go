package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"feed-curator/domain"
	"feed-curator/internal/config"
)

// pageBodyLimit caps how much of a page is read. Enough for any
// article; keeps a misbehaving server from exhausting memory.
const pageBodyLimit = 2 << 20

// Content container selectors tried in order before falling back to
// the largest paragraph on the page.
var contentSelectors = []string{
	"article",
	`[role="main"]`,
	"#main-content",
	"#content",
	".post-content",
	".entry-content",
	".article-content",
}

// FetchPage retrieves a linked page and extracts its article content.
// Used to backfill item bodies when the source feed only carries a
// one-line teaser. Callers are responsible for URL validation; the
// repository layer runs ValidatePageURL before dispatching here.
func FetchPage(ctx context.Context, pageURL string, cfg config.FetchConfig, logger *slog.Logger) (*domain.PageContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building page request: %w", err)
	}

	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := createHTTPClient(cfg).Do(req)
	if err != nil {
		logger.WarnContext(ctx, "page fetch failed", "url", pageURL, "error", err)
		return nil, fmt.Errorf("fetching page %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.Status, Code: resp.StatusCode}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "html") {
		return nil, fmt.Errorf("page %s is not HTML (content-type %s)", pageURL, contentType)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, pageBodyLimit))
	if err != nil {
		return nil, fmt.Errorf("parsing page %s: %w", pageURL, err)
	}

	doc.Find("script, style").Remove()

	content := &domain.PageContent{
		Title:       extractPageTitle(doc),
		Description: extractPageDescription(doc),
		MainContent: extractMainContent(doc),
	}

	logger.DebugContext(ctx, "page content extracted",
		"url", pageURL,
		"content_chars", len(content.MainContent))

	return content, nil
}

// ValidatePageURL rejects URLs the fetcher must never follow: bad
// schemes, private or link-local targets, service ports, and audio
// enclosures that have no article body behind them.
func ValidatePageURL(pageURL string) error {
	if pageURL == "" {
		return errors.New("URL cannot be empty")
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return fmt.Errorf("invalid page URL: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return errors.New("only HTTP or HTTPS schemes allowed")
	}

	if parsed.Hostname() == "" {
		return errors.New("URL must contain a host")
	}

	if isPrivateHost(parsed.Hostname()) {
		return errors.New("access to private networks not allowed")
	}

	if port := parsed.Port(); port != "" && blockedPorts[port] {
		return errors.New("access to this port is not allowed")
	}

	if strings.HasSuffix(strings.ToLower(parsed.Path), ".mp3") {
		return errors.New("audio enclosures carry no page content")
	}

	return nil
}

var blockedPorts = map[string]bool{
	"22": true, "23": true, "25": true, "53": true, "110": true,
	"143": true, "993": true, "995": true, "1433": true, "3306": true,
	"5432": true, "6379": true, "11211": true,
}

func isPrivateHost(hostname string) bool {
	ip := net.ParseIP(hostname)
	if ip != nil {
		return isPrivateIPAddress(ip)
	}

	hostname = strings.ToLower(hostname)
	if hostname == "localhost" || strings.HasPrefix(hostname, "127.") {
		return true
	}

	if hostname == "169.254.169.254" || hostname == "metadata.google.internal" {
		return true
	}

	internalDomains := []string{".local", ".internal", ".corp", ".lan"}
	for _, suffix := range internalDomains {
		if strings.HasSuffix(hostname, suffix) {
			return true
		}
	}

	return false
}

func isPrivateIPAddress(ip net.IP) bool {
	if ip4 := ip.To4(); ip4 != nil {
		switch {
		case ip4[0] == 10:
			return true
		case ip4[0] == 172 && ip4[1] >= 16 && ip4[1] <= 31:
			return true
		case ip4[0] == 192 && ip4[1] == 168:
			return true
		case ip4[0] == 127:
			return true
		case ip4[0] == 169 && ip4[1] == 254:
			return true
		}
	}

	if ip6 := ip.To16(); ip6 != nil {
		if ip6[0] == 0xfe && ip6[1] == 0x80 {
			return true
		}

		if ip6[0] == 0xfc || ip6[0] == 0xfd {
			return true
		}

		if ip.IsLoopback() {
			return true
		}
	}

	return false
}

// extractPageTitle prefers og:title over the document title.
func extractPageTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}

	return strings.TrimSpace(doc.Find("title").First().Text())
}

// extractPageDescription prefers the meta description over og:description.
func extractPageDescription(doc *goquery.Document) string {
	if desc, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok && desc != "" {
		return strings.TrimSpace(desc)
	}

	if og, ok := doc.Find(`meta[property="og:description"]`).First().Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}

	return ""
}

// extractMainContent tries the common content containers in order and
// falls back to the largest paragraph when none match.
func extractMainContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 {
			if text := collapseWhitespace(sel.Text()); text != "" {
				return text
			}
		}
	}

	var largest string
	doc.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := p.Text(); len(text) > len(largest) {
			largest = text
		}
	})

	return collapseWhitespace(largest)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
