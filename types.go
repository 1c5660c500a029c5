package chat2md

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Speaker identifies who wrote a message.
type Speaker string

// Speakers. The value doubles as the label written in the transcript.
const (
	SpeakerUser      Speaker = "User"
	SpeakerAssistant Speaker = "Assistant"
)

// Valid reports whether s is one of the known speakers.
func (s Speaker) Valid() bool {
	return s == SpeakerUser || s == SpeakerAssistant
}

// MessageBlock is one extracted speaker turn.
type MessageBlock struct {
	Ordinal   int     // zero-based position in the transcript
	Speaker   Speaker // User when the block carries an avatar image
	RawMarkup string  // inner HTML of the block's text region
}

// Transcript is what a Source yields: ordered blocks plus the page title.
type Transcript struct {
	Title  string
	Blocks []MessageBlock
}

// Validate checks speakers and ordering. Blocks are never reordered, so an
// out-of-order transcript is rejected rather than sorted.
// An empty transcript is valid here; Convert reports it as ErrNoMessages.
func (t *Transcript) Validate() error {
	if t == nil {
		return ErrNilTranscript
	}
	for i, b := range t.Blocks {
		if !b.Speaker.Valid() {
			return fmt.Errorf("%w: %q (block %d)", ErrInvalidSpeaker, b.Speaker, i)
		}
		if i > 0 && b.Ordinal <= t.Blocks[i-1].Ordinal {
			return fmt.Errorf("%w: block %d has ordinal %d after %d", ErrInvalidOrdinal, i, b.Ordinal, t.Blocks[i-1].Ordinal)
		}
	}
	return nil
}

// Document output constants.
const (
	MediaType     = "text/markdown"
	FileExtension = ".md"
	DefaultTitle  = "chat"
)

// Document is the finished Markdown transcript.
type Document struct {
	Title    string // heading text, unescaped
	FileName string // suggested file name: sanitized title + FileExtension
	Body     string // Markdown
}

// Selectors locate transcript parts in a rendered chat page.
type Selectors struct {
	Message string // one node per speaker turn
	Text    string // the turn's text region; turns without one are skipped
	Avatar  string // present only in user turns
}

// DefaultSelectors returns the selectors matching the chat UI's markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Message: ".text-base",
		Text:    ".whitespace-pre-wrap",
		Avatar:  "img",
	}
}

// withDefaults fills empty selectors from DefaultSelectors.
func (s Selectors) withDefaults() Selectors {
	d := DefaultSelectors()
	if strings.TrimSpace(s.Message) == "" {
		s.Message = d.Message
	}
	if strings.TrimSpace(s.Text) == "" {
		s.Text = d.Text
	}
	if strings.TrimSpace(s.Avatar) == "" {
		s.Avatar = d.Avatar
	}
	return s
}

// Validate checks that every non-empty selector compiles.
func (s Selectors) Validate() error {
	for name, sel := range map[string]string{"message": s.Message, "text": s.Text, "avatar": s.Avatar} {
		if sel == "" {
			continue
		}
		if _, err := cascadia.Compile(sel); err != nil {
			return fmt.Errorf("%w: %s selector %q: %v", ErrInvalidSelector, name, sel, err)
		}
	}
	return nil
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	denestPasses int
}

// WithDenestPasses sets how many span-collapse passes run.
// Panics if n < 1 (programmer error, similar to time.NewTicker).
func WithDenestPasses(n int) Option {
	if n < 1 {
		panic("chat2md: WithDenestPasses requires at least one pass")
	}
	return func(c *Converter) {
		c.cfg.denestPasses = n
	}
}

// WithLogger sets the logger used for debug output. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
