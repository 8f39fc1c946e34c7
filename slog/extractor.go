// Package slog provides logging decorators for kvdrop services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/kvdrop"
)

// Ensure LoggingExtractor implements kvdrop.Extractor.
var _ kvdrop.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging.
type LoggingExtractor struct {
	next   kvdrop.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next kvdrop.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs which representations were offered and how many candidates
// came out.
func (e *LoggingExtractor) Extract(p kvdrop.Payload) (ext *kvdrop.Extraction, err error) {
	defer func(begin time.Time) {
		var candidates, notices int
		if ext != nil {
			candidates, notices = len(ext.Candidates), len(ext.Notices)
		}
		e.logger.Info("extract",
			"structured", len(p.Structured),
			"markup", len(p.Markup),
			"text", len(p.Text),
			"candidates", candidates,
			"notices", notices,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(p)
}
