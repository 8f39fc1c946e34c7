package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/kvdrop"
)

// Ensure LoggingEntryService implements kvdrop.EntryService.
var _ kvdrop.EntryService = (*LoggingEntryService)(nil)

// LoggingEntryService wraps an EntryService with logging.
type LoggingEntryService struct {
	next   kvdrop.EntryService
	logger *slog.Logger
}

// NewLoggingEntryService creates a new LoggingEntryService.
func NewLoggingEntryService(next kvdrop.EntryService, logger *slog.Logger) *LoggingEntryService {
	return &LoggingEntryService{next: next, logger: logger}
}

// FindEntry delegates to the wrapped service and logs the lookup.
func (s *LoggingEntryService) FindEntry(ctx context.Context, key string) (value string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find entry",
			"key", key,
			"bytes", len(value),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindEntry(ctx, key)
}

// PutEntries delegates to the wrapped service and logs the write.
func (s *LoggingEntryService) PutEntries(ctx context.Context, entries ...kvdrop.Entry) (err error) {
	defer func(begin time.Time) {
		keys := make([]string, 0, len(entries))
		for _, e := range entries {
			keys = append(keys, e.Key)
		}
		s.logger.Debug("put entries",
			"keys", keys,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PutEntries(ctx, entries...)
}
