// Package resolve maps URLs to the content items they identify.
package resolve

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/rooftopcms/rooftop"
)

// Ensure Resolver implements rooftop.Resolver at compile time.
var _ rooftop.Resolver = (*Resolver)(nil)

// Resolver classifies URLs as content items, relative pages or external
// links by consulting a content lookup. It holds no per-request state and
// is safe for concurrent use when the lookup is.
type Resolver struct {
	lookup rooftop.ContentLookup
	mode   rooftop.ResolveMode
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMode sets how content ids are found.
// Defaults to rooftop.ResolveByURL.
func WithMode(mode rooftop.ResolveMode) Option {
	return func(r *Resolver) {
		r.mode = mode
	}
}

// NewResolver creates a new Resolver backed by lookup.
func NewResolver(lookup rooftop.ContentLookup, opts ...Option) *Resolver {
	r := &Resolver{lookup: lookup, mode: rooftop.ResolveByURL}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve classifies rawURL relative to host, the host of the current request.
//
// Root-relative URLs without a host count as same-host. A same-host URL
// without a content item behind it is a relative page, never external.
func (r *Resolver) Resolve(ctx context.Context, rawURL string, host string) (*rooftop.LinkTarget, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return &rooftop.LinkTarget{Kind: rooftop.LinkUnresolvable, URL: rawURL}, nil
	}

	if !isWebURL(u) || !sameHost(u, host) {
		return &rooftop.LinkTarget{Kind: rooftop.LinkExternal, URL: rawURL}, nil
	}

	id, found, err := r.findID(ctx, rawURL, u)
	if err != nil {
		return nil, err
	}

	if !found {
		return &rooftop.LinkTarget{
			Kind: rooftop.LinkRelativePage,
			URL:  rawURL,
			Path: pathOf(u),
		}, nil
	}

	meta, err := r.lookup.FindContentMetadata(ctx, id)
	if rooftop.ErrorCode(err) == rooftop.ENOTFOUND {
		return nil, rooftop.Errorf(rooftop.EINCONSISTENT, "content %d found for %s has no metadata", id, rawURL)
	} else if err != nil {
		return nil, fmt.Errorf("finding metadata for content %d: %w", id, err)
	}

	ancestors, err := r.lookup.FindAncestors(ctx, meta.ID, meta.Type)
	if rooftop.ErrorCode(err) == rooftop.ENOTFOUND {
		return nil, rooftop.Errorf(rooftop.EINCONSISTENT, "ancestors of content %d found for %s are missing", meta.ID, rawURL)
	} else if err != nil {
		return nil, fmt.Errorf("finding ancestors of content %d: %w", meta.ID, err)
	}

	// The lookup reports the nearest parent first; targets store the root first.
	ancestors = slices.Clone(ancestors)
	slices.Reverse(ancestors)

	return &rooftop.LinkTarget{
		Kind:      rooftop.LinkContentItem,
		URL:       rawURL,
		Type:      meta.Type,
		ID:        meta.ID,
		Slug:      meta.Slug,
		Path:      pathOf(u),
		Ancestors: ancestors,
	}, nil
}

// findID asks the lookup for the content id behind u. A not-found lookup
// reports found == false rather than an error.
func (r *Resolver) findID(ctx context.Context, rawURL string, u *url.URL) (id int64, found bool, err error) {
	switch r.mode {
	case rooftop.ResolveByPath:
		class := rooftop.ClassifyPath(u.Path)
		if class.Slug == "" {
			return 0, false, nil
		}
		id, err = r.lookup.FindContentIDBySlug(ctx, class.Type, class.Slug)
	default:
		id, err = r.lookup.FindContentIDByURL(ctx, rawURL)
	}

	if rooftop.ErrorCode(err) == rooftop.ENOTFOUND {
		return 0, false, nil
	} else if err != nil {
		return 0, false, fmt.Errorf("finding content for %s: %w", rawURL, err)
	}
	return id, id != 0, nil
}

// isWebURL reports whether u is an http(s) URL or a scheme-less reference.
func isWebURL(u *url.URL) bool {
	if u.Opaque != "" {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return true
	default:
		return false
	}
}

// sameHost reports whether u points at host. Host-less references count
// only when they are root-relative.
func sameHost(u *url.URL, host string) bool {
	if u.Host == "" {
		return strings.HasPrefix(u.Path, "/")
	}
	return strings.EqualFold(u.Host, host)
}

func pathOf(u *url.URL) string {
	if u.Path == "" {
		return "/"
	}
	return u.Path
}
