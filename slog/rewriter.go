package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/rooftopcms/rooftop"
)

// Ensure LoggingRewriter implements rooftop.Rewriter.
var _ rooftop.Rewriter = (*LoggingRewriter)(nil)

// LoggingRewriter wraps a Rewriter with logging.
type LoggingRewriter struct {
	next   rooftop.Rewriter
	logger *slog.Logger
}

// NewLoggingRewriter creates a new LoggingRewriter.
func NewLoggingRewriter(next rooftop.Rewriter, logger *slog.Logger) *LoggingRewriter {
	return &LoggingRewriter{next: next, logger: logger}
}

// Rewrite delegates to the wrapped rewriter and logs sizes and timing.
func (r *LoggingRewriter) Rewrite(ctx context.Context, fragment string, resolver rooftop.Resolver, localHostPrefix string, mode rooftop.OutputMode) (out string, err error) {
	defer func(begin time.Time) {
		r.logger.InfoContext(ctx, "rewrite links",
			"prefix", localHostPrefix,
			"mode", mode.String(),
			"in_bytes", len(fragment),
			"out_bytes", len(out),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Rewrite(ctx, fragment, resolver, localHostPrefix, mode)
}
