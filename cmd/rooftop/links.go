package main

import (
	"log/slog"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/goquery"
	"github.com/rooftopcms/rooftop/prometheus"
	"github.com/rooftopcms/rooftop/resolve"
	"github.com/rooftopcms/rooftop/shortcode"
	rslog "github.com/rooftopcms/rooftop/slog"
)

// linkStack is the resolver and rewriter pair every link-aware command uses.
type linkStack struct {
	Resolver rooftop.Resolver
	Rewriter rooftop.Rewriter
}

// newLinkStack wires a resolver over lookup and a rewriter that expands
// caption shortcodes, adding metrics when m is non-nil and logging last.
func newLinkStack(lookup rooftop.ContentLookup, byPath bool, m *prometheus.Metrics, logger *slog.Logger) linkStack {
	mode := rooftop.ResolveByURL
	if byPath {
		mode = rooftop.ResolveByPath
	}

	var resolver rooftop.Resolver = resolve.NewResolver(lookup, resolve.WithMode(mode))
	var rewriter rooftop.Rewriter = goquery.NewRewriter(goquery.WithMacroExpander(newExpander().Filter()))
	if m != nil {
		resolver = m.Resolver(resolver)
		rewriter = m.Rewriter(rewriter)
	}

	return linkStack{
		Resolver: rslog.NewLoggingResolver(resolver, logger),
		Rewriter: rslog.NewLoggingRewriter(rewriter, logger),
	}
}

func newExpander() *shortcode.Expander {
	e := shortcode.NewExpander()
	e.Register("caption", shortcode.Caption)
	e.Register("wp_caption", shortcode.Caption)
	return e
}
