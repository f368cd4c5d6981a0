package domain

// PageContent is what a linked source page yields after content
// extraction. Used to backfill thin item bodies during ingestion.
type PageContent struct {
	Title       string
	Description string
	MainContent string
}

// Best returns the richest text the page offered: the main content
// when present, otherwise the description.
func (p *PageContent) Best() string {
	if p == nil {
		return ""
	}

	if p.MainContent != "" {
		return p.MainContent
	}

	return p.Description
}
