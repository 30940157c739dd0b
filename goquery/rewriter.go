package goquery

import (
	"context"
	"fmt"

	"github.com/rooftopcms/rooftop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure Rewriter implements rooftop.Rewriter at compile time.
var _ rooftop.Rewriter = (*Rewriter)(nil)

// Rewriter replaces same-host anchors in HTML fragments with structured
// placeholders. Each call owns its parse tree, so a Rewriter is safe for
// concurrent use when the resolver it is given is.
type Rewriter struct {
	expand rooftop.FragmentFilter
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithMacroExpander sets the filter run over the output of attribute-mode
// rewrites, typically a shortcode expander.
func WithMacroExpander(f rooftop.FragmentFilter) Option {
	return func(r *Rewriter) {
		r.expand = f
	}
}

// NewRewriter creates a new Rewriter.
func NewRewriter(opts ...Option) *Rewriter {
	r := &Rewriter{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite resolves every anchor whose href starts with localHostPrefix and
// replaces content items and relative pages with placeholders. All other
// markup is left alone, and a fragment without matching anchors is returned
// as given. Unparsable input degrades to no rewriting; resolver errors abort
// the call.
func (r *Rewriter) Rewrite(ctx context.Context, fragment string, resolver rooftop.Resolver, localHostPrefix string, mode rooftop.OutputMode) (string, error) {
	host, err := hostOf(localHostPrefix)
	if err != nil {
		return "", err
	}

	out, err := r.rewrite(ctx, fragment, resolver, localHostPrefix, host, mode)
	if err != nil {
		return "", err
	}

	if mode == rooftop.OutputAttributes && r.expand != nil {
		out = r.expand(out)
	}
	return out, nil
}

func (r *Rewriter) rewrite(ctx context.Context, s string, resolver rooftop.Resolver, prefix, host string, mode rooftop.OutputMode) (string, error) {
	frag, err := parseFragment(s)
	if err != nil {
		return s, nil
	}

	anchors := frag.localAnchors(prefix)
	if anchors.Length() == 0 {
		return s, nil
	}

	// Walk a snapshot last to first so replacing a node never disturbs the
	// position of an anchor still waiting to be processed.
	for i := anchors.Length() - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		anchor := anchors.Eq(i)
		href, _ := anchor.Attr("href")

		target, err := resolver.Resolve(ctx, href, host)
		if err != nil {
			return "", fmt.Errorf("resolving %s: %w", href, err)
		}
		if !target.Internal() {
			continue
		}

		text := anchor.Text()
		switch mode {
		case rooftop.OutputAttributes:
			anchor.ReplaceWithNodes(attributedAnchor(target, text))
		default:
			// Rendering escapes &, <, >, ' and " in the placeholder text.
			placeholder := rooftop.FormatShortcode(rooftop.ShortcodeFields(target, text))
			anchor.ReplaceWithNodes(&html.Node{Type: html.TextNode, Data: placeholder})
		}
	}

	return frag.render()
}

// attributedAnchor builds an anchor with text as its body and one
// data-link-* attribute per placeholder field.
func attributedAnchor(target *rooftop.LinkTarget, text string) *html.Node {
	el := &html.Node{Type: html.ElementNode, Data: "a", DataAtom: atom.A}
	for _, f := range rooftop.AttributeFields(target) {
		el.Attr = append(el.Attr, html.Attribute{Key: "data-link-" + f.Key, Val: f.Value})
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return el
}
