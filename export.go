package chat2md

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

// Notifier is told when an export finds nothing to convert.
// *notice.Notifier satisfies it.
type Notifier interface {
	Raise()
}

// Exporter wires one trigger: acquire a transcript, convert it, deliver it.
type Exporter struct {
	Source    Source
	Converter *Converter // nil means NewConverter()
	Delivery  Delivery
	Notifier  Notifier // optional
	Logger    *slog.Logger
}

// Export runs one acquire-convert-deliver cycle and returns the delivered
// Document. When the source holds no messages the notifier is raised once,
// nothing is delivered, and ErrNoMessages is returned.
func (e *Exporter) Export(ctx context.Context) (*Document, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	conv := e.Converter
	if conv == nil {
		conv = NewConverter(WithLogger(logger))
	}

	t, err := e.Source.Transcript(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquiring transcript: %w", err)
	}
	logger.Debug("transcript acquired", slog.String("title", t.Title), slog.Int("blocks", len(t.Blocks)))

	doc, err := conv.Convert(ctx, t)
	if errors.Is(err, ErrNoMessages) {
		if e.Notifier != nil {
			e.Notifier.Raise()
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	if err := e.Delivery.Deliver(ctx, doc); err != nil {
		return nil, fmt.Errorf("delivering %s: %w", doc.FileName, err)
	}
	return doc, nil
}
