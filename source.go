package chat2md

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Source acquires a transcript from a rendered chat page.
type Source interface {
	Transcript(ctx context.Context) (*Transcript, error)
}

// HTMLSource reads a saved chat page.
type HTMLSource struct {
	Reader    io.Reader
	Selectors Selectors // empty fields fall back to DefaultSelectors
}

// NewHTMLSource creates an HTMLSource over r with the default selectors.
func NewHTMLSource(r io.Reader) *HTMLSource {
	return &HTMLSource{Reader: r, Selectors: DefaultSelectors()}
}

// Transcript parses the page and extracts its message blocks in document order.
func (s *HTMLSource) Transcript(ctx context.Context) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sel := s.Selectors.withDefaults()
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(s.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseHTML, err)
	}

	t := &Transcript{Title: pageTitle(doc)}
	var walkErr error
	doc.Find(sel.Message).EachWithBreak(func(_ int, msg *goquery.Selection) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		text := msg.Find(sel.Text).First()
		if text.Length() == 0 {
			return true
		}
		markup, err := text.Html()
		if err != nil {
			walkErr = fmt.Errorf("%w: message %d: %v", ErrParseHTML, len(t.Blocks), err)
			return false
		}
		t.Blocks = append(t.Blocks, MessageBlock{
			Ordinal:   len(t.Blocks),
			Speaker:   speakerFor(msg.Find(sel.Avatar).Length() > 0),
			RawMarkup: markup,
		})
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return t, nil
}

// pageTitle returns <title>, else the first <h1>, else DefaultTitle.
func pageTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return DefaultTitle
}

func speakerFor(hasAvatar bool) Speaker {
	if hasAvatar {
		return SpeakerUser
	}
	return SpeakerAssistant
}
