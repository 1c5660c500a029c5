package chat2md

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alnah/go-chat2md/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.HTMLConverter = (*pipeline.GoldmarkConverter)(nil)
	_ Source                 = (*HTMLSource)(nil)
	_ Source                 = (*LiveSource)(nil)
	_ Delivery               = (*FileDelivery)(nil)
	_ Delivery               = (*WriterDelivery)(nil)
)

// Converter turns a Transcript into a Markdown Document.
// A Converter holds no per-conversion state and is safe for concurrent use.
type Converter struct {
	cfg    converterConfig
	logger *slog.Logger
}

// NewConverter creates a Converter with default configuration.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		cfg:    converterConfig{denestPasses: pipeline.MaxDenestPasses},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert runs the full pipeline over t.
//
// Each block's markup is escaped and inline-formatted on its own, then the
// blocks are assembled under the title heading and the document-wide stages
// run once. A transcript without blocks yields ErrNoMessages and no Document.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, t *Transcript) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := t.Validate(); err != nil {
		return nil, err
	}
	if len(t.Blocks) == 0 {
		return nil, ErrNoMessages
	}

	title := strings.TrimSpace(t.Title)
	if title == "" {
		title = DefaultTitle
	}

	blockStages := pipeline.BlockStages()
	turns := make([]pipeline.Turn, 0, len(t.Blocks))
	for _, b := range t.Blocks {
		text, err := pipeline.Run(ctx, blockStages, b.RawMarkup)
		if err != nil {
			return nil, fmt.Errorf("converting message %d: %w", b.Ordinal, err)
		}
		turns = append(turns, pipeline.Turn{Speaker: string(b.Speaker), Text: text})
	}

	body := pipeline.Assemble(pipeline.EscapeLiteral(title), turns)
	body, err = pipeline.Run(ctx, pipeline.DocumentStages(c.cfg.denestPasses), body)
	if err != nil {
		return nil, fmt.Errorf("converting transcript: %w", err)
	}

	c.logger.Debug("transcript converted",
		slog.String("title", title),
		slog.Int("messages", len(turns)),
		slog.Int("bytes", len(body)))

	return &Document{
		Title:    title,
		FileName: FileName(title),
		Body:     body,
	}, nil
}
