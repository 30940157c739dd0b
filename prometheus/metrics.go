// Package prometheus exposes rooftop link rewriting and HTTP metrics.
package prometheus

import (
	"context"
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rooftopcms/rooftop"
)

const namespace = "rooftop"

// Metrics holds the collectors of one server. Each Metrics has its own
// registry so tests and multiple servers do not share counters.
type Metrics struct {
	registry *prom.Registry

	linksResolved   *prom.CounterVec
	resolveErrors   prom.Counter
	rewriteDuration *prom.HistogramVec
	requests        *prom.CounterVec
	requestDuration *prom.HistogramVec
}

// NewMetrics creates and registers the collectors, including the Go
// runtime and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prom.NewRegistry(),
		linksResolved: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "links_resolved_total",
			Help:      "Links resolved, by resulting kind.",
		}, []string{"kind"}),
		resolveErrors: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "link_resolve_errors_total",
			Help:      "Link resolutions that failed with an error.",
		}),
		rewriteDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "rewrite_duration_seconds",
			Help:      "Time spent rewriting links in one fragment.",
			Buckets:   prom.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"mode"}),
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route, method and status code.",
		}, []string{"route", "method", "code"}),
		requestDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
	}

	m.registry.MustRegister(
		m.linksResolved,
		m.resolveErrors,
		m.rewriteDuration,
		m.requests,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware counts and times requests handled by next under route.
func (m *Metrics) Middleware(route string, next http.Handler) http.Handler {
	labels := prom.Labels{"route": route}
	return promhttp.InstrumentHandlerDuration(
		m.requestDuration.MustCurryWith(labels),
		promhttp.InstrumentHandlerCounter(m.requests.MustCurryWith(labels), next),
	)
}

// Ensure Resolver implements rooftop.Resolver at compile time.
var _ rooftop.Resolver = (*Resolver)(nil)

// Resolver counts the outcome of every resolution.
type Resolver struct {
	next    rooftop.Resolver
	metrics *Metrics
}

// Resolver wraps next with resolution counters.
func (m *Metrics) Resolver(next rooftop.Resolver) *Resolver {
	return &Resolver{next: next, metrics: m}
}

// Resolve delegates to the wrapped resolver.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, host string) (*rooftop.LinkTarget, error) {
	target, err := r.next.Resolve(ctx, rawURL, host)
	if err != nil {
		r.metrics.resolveErrors.Inc()
		return nil, err
	}
	r.metrics.linksResolved.WithLabelValues(target.Kind.String()).Inc()
	return target, nil
}

// Ensure Rewriter implements rooftop.Rewriter at compile time.
var _ rooftop.Rewriter = (*Rewriter)(nil)

// Rewriter times every rewrite by output mode.
type Rewriter struct {
	next    rooftop.Rewriter
	metrics *Metrics
}

// Rewriter wraps next with a duration histogram.
func (m *Metrics) Rewriter(next rooftop.Rewriter) *Rewriter {
	return &Rewriter{next: next, metrics: m}
}

// Rewrite delegates to the wrapped rewriter.
func (r *Rewriter) Rewrite(ctx context.Context, fragment string, resolver rooftop.Resolver, localHostPrefix string, mode rooftop.OutputMode) (string, error) {
	timer := prom.NewTimer(r.metrics.rewriteDuration.WithLabelValues(mode.String()))
	defer timer.ObserveDuration()
	return r.next.Rewrite(ctx, fragment, resolver, localHostPrefix, mode)
}
