package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rooftopcms/rooftop"
)

// Ensure LoggingSanitiser implements rooftop.ResponseSanitiser.
var _ rooftop.ResponseSanitiser = (*LoggingSanitiser)(nil)

// LoggingSanitiser wraps a ResponseSanitiser with logging.
type LoggingSanitiser struct {
	next   rooftop.ResponseSanitiser
	logger *slog.Logger
}

// NewLoggingSanitiser creates a new LoggingSanitiser.
func NewLoggingSanitiser(next rooftop.ResponseSanitiser, logger *slog.Logger) *LoggingSanitiser {
	return &LoggingSanitiser{next: next, logger: logger}
}

// SanitiseContent delegates to the wrapped sanitiser and logs the operation.
func (s *LoggingSanitiser) SanitiseContent(ctx context.Context, req *rooftop.Request) (resp rooftop.Response, err error) {
	defer func(begin time.Time) {
		s.logger.InfoContext(ctx, "sanitise content",
			"host", req.Host,
			"id", req.Content.ID,
			"type", req.Content.Type,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SanitiseContent(ctx, req)
}

// SanitiseMenu delegates to the wrapped sanitiser and logs the operation.
func (s *LoggingSanitiser) SanitiseMenu(ctx context.Context, req *rooftop.Request, menu *rooftop.Menu) (resp *rooftop.MenuResponse, err error) {
	defer func(begin time.Time) {
		s.logger.InfoContext(ctx, "sanitise menu",
			"host", req.Host,
			"menu", menu.Slug,
			"items", len(menu.Items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SanitiseMenu(ctx, req, menu)
}
