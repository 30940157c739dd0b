package rooftop

import (
	"context"
	"encoding/json"
	"strings"
)

// LinkKind classifies the outcome of resolving a URL.
type LinkKind int

// Link kinds.
const (
	// LinkUnresolvable marks a URL that could not be parsed.
	LinkUnresolvable LinkKind = iota
	// LinkContentItem marks a URL that identifies a stored content item.
	LinkContentItem
	// LinkRelativePage marks a same-host URL with no content item behind it.
	LinkRelativePage
	// LinkExternal marks a URL on another host. Such links are left untouched.
	LinkExternal
)

// TypeRelative is the type reported for same-host links that resolve to no content item.
const TypeRelative = "relative"

// String returns the kind's name.
func (k LinkKind) String() string {
	switch k {
	case LinkContentItem:
		return "content"
	case LinkRelativePage:
		return "relative"
	case LinkExternal:
		return "external"
	default:
		return "unresolvable"
	}
}

// LinkTarget is the content identity a URL resolves to.
//
// Type, ID and Slug are set only for LinkContentItem. Path is set for
// LinkContentItem and LinkRelativePage. Ancestors lists the ids of the
// item's ancestors from the root down to the immediate parent and is empty
// for items without any. URL always holds the original input.
type LinkTarget struct {
	Kind      LinkKind
	URL       string
	Type      string
	ID        int64
	Slug      string
	Path      string
	Ancestors []int64
}

// Internal reports whether the target points at this site and should be
// replaced by a placeholder.
func (t *LinkTarget) Internal() bool {
	return t.Kind == LinkContentItem || t.Kind == LinkRelativePage
}

// linkObject is the JSON shape of an internal link.
type linkObject struct {
	Type      string  `json:"type"`
	ID        int64   `json:"id,omitempty"`
	Slug      string  `json:"slug,omitempty"`
	Path      string  `json:"path,omitempty"`
	Ancestors []int64 `json:"ancestors,omitempty"`
}

// MarshalJSON encodes internal targets as a link object and every other
// target as its original URL string.
func (t *LinkTarget) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case LinkContentItem:
		return json.Marshal(linkObject{
			Type:      t.Type,
			ID:        t.ID,
			Slug:      t.Slug,
			Ancestors: t.Ancestors,
		})
	case LinkRelativePage:
		return json.Marshal(linkObject{Type: TypeRelative, Path: t.Path})
	default:
		return json.Marshal(t.URL)
	}
}

// ContentMetadata is the identity of a stored content item.
type ContentMetadata struct {
	Type string
	ID   int64
	Slug string
}

// ContentLookup answers the questions a Resolver asks of the content store.
// Implementations must be safe for concurrent reads.
type ContentLookup interface {
	// FindContentIDByURL returns the id of the content item a URL points to.
	// Returns ENOTFOUND if no item lives at the URL.
	FindContentIDByURL(ctx context.Context, rawURL string) (int64, error)

	// FindContentIDBySlug returns the id of the item of the given type and slug.
	// Returns ENOTFOUND if there is none.
	FindContentIDBySlug(ctx context.Context, contentType, slug string) (int64, error)

	// FindContentMetadata returns the type, canonical id and slug of an item.
	// Returns ENOTFOUND if the item does not exist.
	FindContentMetadata(ctx context.Context, id int64) (*ContentMetadata, error)

	// FindAncestors returns the ids of an item's ancestors, nearest parent first.
	// Non-hierarchical items have none.
	FindAncestors(ctx context.Context, id int64, contentType string) ([]int64, error)
}

// ResolveMode selects how a Resolver finds the content id behind a URL.
type ResolveMode int

// Resolve modes.
const (
	// ResolveByURL asks the content store to map the whole URL to an id.
	ResolveByURL ResolveMode = iota
	// ResolveByPath infers type and slug from the path segment count.
	ResolveByPath
)

// Resolver maps URLs to link targets.
type Resolver interface {
	// Resolve classifies rawURL relative to the host of the current request.
	// A failed content lookup after an id was found returns EINCONSISTENT.
	Resolve(ctx context.Context, rawURL string, host string) (*LinkTarget, error)
}

// OutputMode selects the placeholder a Rewriter substitutes for internal links.
type OutputMode int

// Output modes.
const (
	// OutputShortcode replaces anchors with a [link ...] text node.
	OutputShortcode OutputMode = iota
	// OutputAttributes replaces anchors with an anchor carrying data-link-* attributes.
	OutputAttributes
)

// String returns the mode's name.
func (m OutputMode) String() string {
	if m == OutputAttributes {
		return "attributes"
	}
	return "shortcode"
}

// ParseOutputMode returns the mode with the given name.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shortcode":
		return OutputShortcode, nil
	case "attributes":
		return OutputAttributes, nil
	default:
		return 0, Errorf(EINVALID, "unknown output mode %q", s)
	}
}

// Rewriter replaces same-host anchors in an HTML fragment with placeholders.
type Rewriter interface {
	// Rewrite resolves every anchor whose href starts with localHostPrefix
	// and swaps internal ones for placeholders. Malformed HTML never fails;
	// resolver errors abort the call.
	Rewrite(ctx context.Context, fragment string, resolver Resolver, localHostPrefix string, mode OutputMode) (string, error)
}

// FragmentFilter is a pure transformation from one HTML fragment to another.
type FragmentFilter func(fragment string) string

// ApplyFilters runs fragment through filters in order.
func ApplyFilters(fragment string, filters ...FragmentFilter) string {
	for _, f := range filters {
		if f != nil {
			fragment = f(fragment)
		}
	}
	return fragment
}

// DiscoveredLink is a same-host anchor found in a fragment.
type DiscoveredLink struct {
	URL  string
	Text string
}

// LinkExtractor finds same-host anchors in HTML fragments.
type LinkExtractor interface {
	ExtractLinks(fragment string, localHostPrefix string) ([]DiscoveredLink, error)
}
