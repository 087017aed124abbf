package models

import (
	"context"
	"fmt"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/serr"
)

// Rasterizer turns a card into encoded image bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, card Card) ([]byte, error)
}

// CardExporter resolves a card reference, rasterizes it and hands the JPEG
// to a sink. It keeps no state between exports, so concurrent exports are
// independent.
type CardExporter struct {
	rasterizer Rasterizer
}

// NewCardExporter returns an exporter using r.
func NewCardExporter(r Rasterizer) *CardExporter {
	return &CardExporter{rasterizer: r}
}

// Export produces university_card_<index>.jpg for ref and delivers it to
// sink. It reports whether an artifact was delivered. A stale reference is
// a silent no-op; rasterization and delivery failures, panics included, are
// logged and reported as false.
func (ce *CardExporter) Export(ctx context.Context, ref CardRef, index int, sink Sink) (delivered bool) {
	filename := CardFilename(index)

	defer func() {
		if r := recover(); r != nil {
			logger.LogErr(serr.New(fmt.Sprintf("card export panicked: %v", r)), "Card export aborted", "file", filename)
			delivered = false
		}
	}()

	if ref == nil || sink == nil {
		logger.Debug("Card export skipped, nothing to export", "file", filename)
		return false
	}

	card, live := ref.Resolve()
	if !live {
		logger.Debug("Card export skipped, card is not rendered", "index", index)
		return false
	}

	data, err := ce.rasterizer.Rasterize(ctx, card)
	if err != nil {
		logger.LogErr(err, "Failed to rasterize card", "file", filename, "name", card.Name)
		return false
	}

	if err := sink.Deliver(filename, data); err != nil {
		logger.LogErr(err, "Failed to deliver card", "file", filename)
		return false
	}

	logger.Info("Card exported", "file", filename, "bytes", len(data))
	return true
}
