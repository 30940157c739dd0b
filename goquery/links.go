package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rooftopcms/rooftop"
)

// Ensure LinkExtractor implements rooftop.LinkExtractor at compile time.
var _ rooftop.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor finds same-host anchors in HTML fragments.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks returns every anchor whose href starts with localHostPrefix,
// deduplicated by URL and in document order. The first anchor's text wins.
func (e *LinkExtractor) ExtractLinks(fragment string, localHostPrefix string) ([]rooftop.DiscoveredLink, error) {
	if _, err := hostOf(localHostPrefix); err != nil {
		return nil, err
	}

	frag, err := parseFragment(fragment)
	if err != nil {
		return nil, rooftop.Errorf(rooftop.EINVALID, "failed to parse HTML: %v", err)
	}

	seen := make(map[string]bool)
	var links []rooftop.DiscoveredLink

	frag.localAnchors(localHostPrefix).Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if seen[href] {
			return
		}
		seen[href] = true

		links = append(links, rooftop.DiscoveredLink{
			URL:  href,
			Text: strings.TrimSpace(sel.Text()),
		})
	})

	return links, nil
}
