package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/kvdrop"
)

// Ensure LoggingSerializer implements kvdrop.Serializer.
var _ kvdrop.Serializer = (*LoggingSerializer)(nil)

// LoggingSerializer wraps a Serializer with logging.
type LoggingSerializer struct {
	next   kvdrop.Serializer
	logger *slog.Logger
}

// NewLoggingSerializer creates a new LoggingSerializer.
func NewLoggingSerializer(next kvdrop.Serializer, logger *slog.Logger) *LoggingSerializer {
	return &LoggingSerializer{next: next, logger: logger}
}

// Format delegates to the wrapped serializer.
func (s *LoggingSerializer) Format() kvdrop.Format {
	return s.next.Format()
}

// MIMEType delegates to the wrapped serializer.
func (s *LoggingSerializer) MIMEType() string {
	return s.next.MIMEType()
}

// Serialize delegates to the wrapped serializer and logs the export.
func (s *LoggingSerializer) Serialize(ds *kvdrop.Dataset) (out []byte, err error) {
	defer func(begin time.Time) {
		s.logger.Info("serialize",
			"format", string(s.next.Format()),
			"records", len(ds.Records),
			"bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Serialize(ds)
}
