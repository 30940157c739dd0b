package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rooftopcms/rooftop"
)

// Ensure LoggingResolver implements rooftop.Resolver.
var _ rooftop.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver and logs each classification at debug level.
type LoggingResolver struct {
	next   rooftop.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next rooftop.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the outcome.
func (r *LoggingResolver) Resolve(ctx context.Context, rawURL string, host string) (target *rooftop.LinkTarget, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", rawURL,
			"host", host,
			"duration", time.Since(begin),
		}
		if target != nil {
			attrs = append(attrs, "kind", target.Kind.String())
			if target.Kind == rooftop.LinkContentItem {
				attrs = append(attrs, "type", target.Type, "id", target.ID)
			}
		}
		if err != nil {
			r.logger.ErrorContext(ctx, "resolve link", append(attrs, "err", err)...)
			return
		}
		r.logger.DebugContext(ctx, "resolve link", attrs...)
	}(time.Now())
	return r.next.Resolve(ctx, rawURL, host)
}
