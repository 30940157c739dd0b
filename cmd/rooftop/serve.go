package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/bloom"
	"github.com/rooftopcms/rooftop/bluemonday"
	rhttp "github.com/rooftopcms/rooftop/http"
	"github.com/rooftopcms/rooftop/prometheus"
	"github.com/rooftopcms/rooftop/sanitise"
	rslog "github.com/rooftopcms/rooftop/slog"
	"golang.org/x/sync/errgroup"
)

// Bloom filter sizing for the path gate.
const (
	filterCapacity = 100_000
	filterFPRate   = 0.01
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	mode, err := rooftop.ParseOutputMode(c.Mode)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	filter := bloom.NewFilter(filterCapacity, filterFPRate)
	if err := bloom.Warm(deps.Ctx, filter, deps.Contents); err != nil {
		return fmt.Errorf("failed to load content paths: %w", err)
	}
	deps.Logger.Info("loaded content paths", "count", filter.Count())

	var metrics *prometheus.Metrics
	if !c.NoMetrics {
		metrics = prometheus.NewMetrics()
	}

	links := newLinkStack(bloom.NewLookup(deps.Lookup, filter), c.ByPath, metrics, deps.Logger)

	opts := []sanitise.Option{sanitise.WithMode(mode)}
	if !c.RawHTML {
		opts = append(opts, sanitise.WithFilters(bluemonday.NewPolicy().Filter()))
	}
	if c.NoLinks {
		opts = append(opts, sanitise.WithoutLinks())
	}

	server := rhttp.NewServer(c.Addr)
	server.ContentService = deps.Contents
	server.MenuService = deps.Menus
	server.Sanitiser = rslog.NewLoggingSanitiser(sanitise.NewSanitiser(links.Resolver, links.Rewriter, opts...), deps.Logger)
	server.Logger = deps.Logger
	server.Metrics = metrics
	if c.RPS > 0 {
		server.Limiter = rhttp.NewClientLimiter(c.RPS, c.Burst)
	}

	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.ListenAndServe(ctx) })
	if c.Refresh > 0 {
		g.Go(func() error {
			return bloom.Refresh(ctx, filter, deps.Contents, c.Refresh, func(err error) {
				deps.Logger.Warn("reload content paths failed", "error", err)
			})
		})
	}
	return g.Wait()
}
