package rooftop

import (
	"net/url"
	"strconv"
	"strings"
)

// Content types the path heuristic can infer without a type segment.
const (
	TypePage = "page"
	TypePost = "post"
)

// PathClass is the content identity inferred from the shape of a URL path.
type PathClass struct {
	Type string
	Slug string
}

// PathSegments splits a URL path into its non-empty segments.
func PathSegments(p string) []string {
	var segments []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// NormalizePath returns p with duplicate, leading-only and trailing slashes
// collapsed. The empty path normalizes to "/".
func NormalizePath(p string) string {
	return "/" + strings.Join(PathSegments(p), "/")
}

// ClassifyPath infers a content type and slug by counting path segments.
//
// Some archive URLs of custom content types resolve to an archive handler
// rather than a single item, so the segment count is the only signal left:
//   - no segments: the root page, without a slug
//   - one segment: a page with that slug
//   - two segments: a post whose slug is the last segment
//   - three or more: the second segment is the type, the third the slug
func ClassifyPath(p string) PathClass {
	segments := PathSegments(p)
	switch len(segments) {
	case 0:
		return PathClass{Type: TypePage}
	case 1:
		return PathClass{Type: TypePage, Slug: segments[0]}
	case 2:
		return PathClass{Type: TypePost, Slug: segments[1]}
	default:
		return PathClass{Type: segments[1], Slug: segments[2]}
	}
}

// AncestorSlugs returns the n path segments immediately preceding the final
// segment of p, in path order. Fewer are returned when the path is too short.
func AncestorSlugs(p string, n int) []string {
	if n <= 0 {
		return nil
	}
	segments := PathSegments(p)
	if len(segments) < 2 {
		return nil
	}
	parents := segments[:len(segments)-1]
	if n > len(parents) {
		n = len(parents)
	}
	return parents[len(parents)-n:]
}

// Permalink returns the default path of a content item. Items with ancestors
// and pages nest under their ancestors' slugs; other types live under a
// segment named after their type.
func Permalink(contentType, slug string, ancestorSlugs []string) string {
	if len(ancestorSlugs) > 0 || contentType == TypePage {
		segments := append(append([]string{}, ancestorSlugs...), slug)
		return NormalizePath(strings.Join(segments, "/"))
	}
	return NormalizePath(contentType + "/" + slug)
}

// queryIDKeys are the query parameters that address content by id
// regardless of the path, as in "/?p=12" or "/?page_id=7".
var queryIDKeys = []string{"p", "page_id"}

// QueryContentID returns the content id addressed by query, if any.
func QueryContentID(query url.Values) (int64, bool) {
	for _, key := range queryIDKeys {
		v := query.Get(key)
		if v == "" {
			continue
		}
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return 0, false
		}
		return id, true
	}
	return 0, false
}
