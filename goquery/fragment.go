// Package goquery implements HTML fragment processing with goquery:
// rewriting internal links into placeholders and extracting them for audits.
package goquery

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rooftopcms/rooftop"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// fragment is a parsed HTML fragment hung under a synthetic wrapper element.
// The wrapper is never serialized.
type fragment struct {
	wrapper *html.Node
	doc     *goquery.Document
}

// parseFragment parses s in the context of a <div> so that content without
// a single owning root still yields one tree. The HTML5 parser recovers from
// malformed markup; an error means the input could not be read at all.
func parseFragment(s string) (*fragment, error) {
	wrapper := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(s), wrapper)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	return &fragment{wrapper: wrapper, doc: goquery.NewDocumentFromNode(wrapper)}, nil
}

// localAnchors selects every anchor whose href textually starts with prefix,
// in document order.
func (f *fragment) localAnchors(prefix string) *goquery.Selection {
	return f.doc.Find("a[href]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return strings.HasPrefix(href, prefix)
	})
}

// render serializes the wrapper's children.
func (f *fragment) render() (string, error) {
	var buf bytes.Buffer
	for c := f.wrapper.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// hostOf returns the host of a scheme+host prefix such as "https://example.com".
func hostOf(localHostPrefix string) (string, error) {
	u, err := url.Parse(localHostPrefix)
	if err != nil || u.Host == "" {
		return "", rooftop.Errorf(rooftop.EINVALID, "invalid local host prefix %q", localHostPrefix)
	}
	return u.Host, nil
}
