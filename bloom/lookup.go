package bloom

import (
	"context"
	"net/url"
	"time"

	"github.com/rooftopcms/rooftop"
)

// warmPageSize is the page size used when loading paths into a filter.
const warmPageSize = 500

// Ensure Lookup implements rooftop.ContentLookup at compile time.
var _ rooftop.ContentLookup = (*Lookup)(nil)

// Lookup wraps a ContentLookup and answers ENOTFOUND for URLs whose path
// is not in the filter. Id queries such as "?p=12" always reach the
// wrapped lookup.
type Lookup struct {
	next   rooftop.ContentLookup
	filter *Filter
}

// NewLookup creates a new Lookup.
func NewLookup(next rooftop.ContentLookup, filter *Filter) *Lookup {
	return &Lookup{next: next, filter: filter}
}

// FindContentIDByURL consults the filter before delegating.
func (l *Lookup) FindContentIDByURL(ctx context.Context, rawURL string) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return l.next.FindContentIDByURL(ctx, rawURL)
	}
	if _, ok := rooftop.QueryContentID(u.Query()); !ok && !l.filter.HasPath(u.Path) {
		return 0, rooftop.Errorf(rooftop.ENOTFOUND, "no content at %s", rawURL)
	}
	return l.next.FindContentIDByURL(ctx, rawURL)
}

// FindContentIDBySlug delegates to the wrapped lookup.
func (l *Lookup) FindContentIDBySlug(ctx context.Context, contentType, slug string) (int64, error) {
	return l.next.FindContentIDBySlug(ctx, contentType, slug)
}

// FindContentMetadata delegates to the wrapped lookup.
func (l *Lookup) FindContentMetadata(ctx context.Context, id int64) (*rooftop.ContentMetadata, error) {
	return l.next.FindContentMetadata(ctx, id)
}

// FindAncestors delegates to the wrapped lookup.
func (l *Lookup) FindAncestors(ctx context.Context, id int64, contentType string) ([]int64, error) {
	return l.next.FindAncestors(ctx, id, contentType)
}

// Warm replaces the filter's paths with the path of every stored item.
// Paths of deleted items drop out.
func Warm(ctx context.Context, filter *Filter, svc rooftop.ContentService) error {
	var paths []string
	for offset := 0; ; offset += warmPageSize {
		contents, err := svc.FindContents(ctx, rooftop.ContentFilter{Offset: offset, Limit: warmPageSize})
		if err != nil {
			return err
		}
		for _, c := range contents {
			paths = append(paths, c.Path)
		}
		if len(contents) < warmPageSize {
			break
		}
	}
	filter.replace(paths)
	return nil
}

// Refresh rewarms filter every interval until ctx is canceled, so paths
// stored by other processes sharing the database become visible. A failed
// rewarm keeps the previous paths and is passed to onErr.
func Refresh(ctx context.Context, filter *Filter, svc rooftop.ContentService, interval time.Duration, onErr func(error)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := Warm(ctx, filter, svc); err != nil && ctx.Err() == nil && onErr != nil {
				onErr(err)
			}
		}
	}
}
