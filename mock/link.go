package mock

import (
	"context"

	"github.com/rooftopcms/rooftop"
)

var _ rooftop.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of rooftop.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, rawURL string, host string) (*rooftop.LinkTarget, error)
}

func (r *Resolver) Resolve(ctx context.Context, rawURL string, host string) (*rooftop.LinkTarget, error) {
	return r.ResolveFn(ctx, rawURL, host)
}

// ResolverMap returns a Resolver that answers from targets and treats every
// other URL as external.
func ResolverMap(targets map[string]*rooftop.LinkTarget) *Resolver {
	return &Resolver{
		ResolveFn: func(_ context.Context, rawURL string, _ string) (*rooftop.LinkTarget, error) {
			if t, ok := targets[rawURL]; ok {
				return t, nil
			}
			return &rooftop.LinkTarget{Kind: rooftop.LinkExternal, URL: rawURL}, nil
		},
	}
}

var _ rooftop.Rewriter = (*Rewriter)(nil)

// Rewriter is a mock implementation of rooftop.Rewriter.
type Rewriter struct {
	RewriteFn func(ctx context.Context, fragment string, resolver rooftop.Resolver, localHostPrefix string, mode rooftop.OutputMode) (string, error)
}

func (r *Rewriter) Rewrite(ctx context.Context, fragment string, resolver rooftop.Resolver, localHostPrefix string, mode rooftop.OutputMode) (string, error) {
	return r.RewriteFn(ctx, fragment, resolver, localHostPrefix, mode)
}

var _ rooftop.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of rooftop.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(fragment string, localHostPrefix string) ([]rooftop.DiscoveredLink, error)
}

func (e *LinkExtractor) ExtractLinks(fragment string, localHostPrefix string) ([]rooftop.DiscoveredLink, error) {
	return e.ExtractLinksFn(fragment, localHostPrefix)
}
