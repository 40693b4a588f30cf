package chunker

import (
	"strings"

	"pdf-tutor/internal/gateway"
)

// Page is one page of extracted document text.
type Page struct {
	Number int
	Text   string
}

// Options controls how pages are grouped into chunks.
type Options struct {
	MaxChars int
}

// DefaultMaxChars matches the summary prompt's character budget so each
// chunk fits a single prompt without further truncation.
const DefaultMaxChars = 20000

// SplitPages groups consecutive pages into chunks bounded by MaxChars,
// preserving page order and recording each chunk's page range. A page
// larger than the budget becomes a chunk of its own.
func SplitPages(pages []Page, opts Options) []gateway.Chunk {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}

	var chunks []gateway.Chunk
	var current []Page
	var currentLen int

	flush := func() {
		if len(current) == 0 {
			return
		}
		text := ""
		for i, p := range current {
			if i > 0 {
				text += "\n"
			}
			text += p.Text
		}
		chunks = append(chunks, gateway.Chunk{
			StartPage: current[0].Number,
			EndPage:   current[len(current)-1].Number,
			Text:      text,
		})
		current = nil
		currentLen = 0
	}

	for _, page := range pages {
		if currentLen > 0 && currentLen+len(page.Text) > opts.MaxChars {
			flush()
		}
		current = append(current, page)
		currentLen += len(page.Text)
	}
	flush()

	return chunks
}

// PagesFromText splits extracted document text into pages on form-feed
// separators, the convention text extractors use for page breaks. Text
// without separators becomes a single page.
func PagesFromText(text string) []Page {
	parts := strings.Split(text, "\f")
	pages := make([]Page, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pages = append(pages, Page{Number: i + 1, Text: part})
	}
	return pages
}
