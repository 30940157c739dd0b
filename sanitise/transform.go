package sanitise

import (
	"context"
	"fmt"

	"github.com/rooftopcms/rooftop"
)

// RawTitle replaces the rendered title with the raw stored title.
func RawTitle(_ context.Context, req *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
	resp.Title = rooftop.Title{Raw: req.Content.Title, Flat: true}
	return resp, nil
}

// RemoveGUID drops the guid.
func RemoveGUID(_ context.Context, _ *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
	resp.GUID = nil
	return resp, nil
}

// EncodeBody replaces the rendered content with the stored body.
func EncodeBody(_ context.Context, req *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
	body := req.Content.Body
	resp.Content = rooftop.Text{Encoded: &body}
	return resp, nil
}

// EncodeExcerpt replaces the rendered excerpt with the stored excerpt.
func EncodeExcerpt(_ context.Context, req *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
	excerpt := req.Content.Excerpt
	resp.Excerpt = rooftop.Text{Encoded: &excerpt}
	return resp, nil
}

// FilterContent runs the encoded content through filters in order.
func FilterContent(filters ...rooftop.FragmentFilter) rooftop.Transform {
	return func(_ context.Context, _ *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
		if resp.Content.Encoded == nil || len(filters) == 0 {
			return resp, nil
		}
		filtered := rooftop.ApplyFilters(*resp.Content.Encoded, filters...)
		resp.Content = rooftop.Text{Rendered: resp.Content.Rendered, Encoded: &filtered}
		return resp, nil
	}
}

// LinkObject replaces the link URL with the link object it resolves to.
// Links that resolve externally keep their URL.
func LinkObject(resolver rooftop.Resolver) rooftop.Transform {
	return func(ctx context.Context, req *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
		link, err := resolveLink(ctx, resolver, req.Host, resp.Link.URL)
		if err != nil {
			return rooftop.Response{}, err
		}
		resp.Link = link
		return resp, nil
	}
}

// ContentURLs rewrites same-host anchors in the encoded content into
// placeholders.
func ContentURLs(rewriter rooftop.Rewriter, resolver rooftop.Resolver, mode rooftop.OutputMode) rooftop.Transform {
	return func(ctx context.Context, req *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
		if resp.Content.Encoded == nil {
			return resp, nil
		}
		out, err := rewriter.Rewrite(ctx, *resp.Content.Encoded, resolver, req.LocalHostPrefix(), mode)
		if err != nil {
			return rooftop.Response{}, fmt.Errorf("rewriting content %d: %w", resp.ID, err)
		}
		resp.Content = rooftop.Text{Rendered: resp.Content.Rendered, Encoded: &out}
		return resp, nil
	}
}

// RemoveLinks drops the _links section.
func RemoveLinks(_ context.Context, _ *rooftop.Request, resp rooftop.Response) (rooftop.Response, error) {
	resp.Links = nil
	return resp, nil
}

func resolveLink(ctx context.Context, resolver rooftop.Resolver, host, rawURL string) (rooftop.Link, error) {
	target, err := resolver.Resolve(ctx, rawURL, host)
	if err != nil {
		return rooftop.Link{}, fmt.Errorf("resolving link %s: %w", rawURL, err)
	}
	if !target.Internal() {
		return rooftop.Link{URL: rawURL}, nil
	}
	return rooftop.Link{URL: rawURL, Target: target}, nil
}
