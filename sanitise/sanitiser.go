// Package sanitise turns stored content into the responses served to
// client renderers: raw bodies instead of rendered markup, and links as
// structured objects instead of URLs.
package sanitise

import (
	"context"

	"github.com/rooftopcms/rooftop"
)

// Ensure Sanitiser implements rooftop.ResponseSanitiser at compile time.
var _ rooftop.ResponseSanitiser = (*Sanitiser)(nil)

// Sanitiser runs responses through a fixed pipeline of transforms.
type Sanitiser struct {
	resolver    rooftop.Resolver
	rewriter    rooftop.Rewriter
	mode        rooftop.OutputMode
	filters     []rooftop.FragmentFilter
	removeLinks bool

	pipeline rooftop.Pipeline
}

// Option configures a Sanitiser.
type Option func(*Sanitiser)

// WithMode sets the placeholder output mode. Defaults to rooftop.OutputAttributes.
func WithMode(mode rooftop.OutputMode) Option {
	return func(s *Sanitiser) {
		s.mode = mode
	}
}

// WithFilters adds fragment filters run over the body before links are rewritten.
func WithFilters(filters ...rooftop.FragmentFilter) Option {
	return func(s *Sanitiser) {
		s.filters = append(s.filters, filters...)
	}
}

// WithoutLinks drops the _links section from responses.
func WithoutLinks() Option {
	return func(s *Sanitiser) {
		s.removeLinks = true
	}
}

// NewSanitiser creates a new Sanitiser.
func NewSanitiser(resolver rooftop.Resolver, rewriter rooftop.Rewriter, opts ...Option) *Sanitiser {
	s := &Sanitiser{
		resolver: resolver,
		rewriter: rewriter,
		mode:     rooftop.OutputAttributes,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.pipeline = rooftop.Pipeline{
		RawTitle,
		RemoveGUID,
		EncodeBody,
		EncodeExcerpt,
		FilterContent(s.filters...),
		LinkObject(s.resolver),
		ContentURLs(s.rewriter, s.resolver, s.mode),
	}
	if s.removeLinks {
		s.pipeline = append(s.pipeline, RemoveLinks)
	}
	return s
}

// SanitiseContent builds the response for req.Content and runs the pipeline.
func (s *Sanitiser) SanitiseContent(ctx context.Context, req *rooftop.Request) (rooftop.Response, error) {
	resp := rooftop.NewResponse(req.Content, req.LocalHostPrefix())
	return s.pipeline.Apply(ctx, req, resp)
}

// SanitiseMenu builds the response for menu with each item URL replaced by
// its link object.
func (s *Sanitiser) SanitiseMenu(ctx context.Context, req *rooftop.Request, menu *rooftop.Menu) (*rooftop.MenuResponse, error) {
	resp := rooftop.NewMenuResponse(menu)
	for i, item := range resp.Items {
		link, err := resolveLink(ctx, s.resolver, req.Host, item.URL.URL)
		if err != nil {
			return nil, err
		}
		resp.Items[i].URL = link
	}
	return resp, nil
}
