package main

import (
	"fmt"
	"net/url"

	"github.com/rooftopcms/rooftop"
	"github.com/rooftopcms/rooftop/goquery"
	"github.com/rooftopcms/rooftop/resolve"
)

const auditPageSize = 100

// Run executes the audit command. Every same-host link in stored content is
// resolved, and links with no content item behind them are reported one
// per line as "id<TAB>kind<TAB>url<TAB>text".
func (c *AuditCmd) Run(deps *Dependencies) error {
	u, err := url.Parse(c.Prefix)
	if err != nil || u.Host == "" {
		err := rooftop.Errorf(rooftop.EINVALID, "invalid prefix %q", c.Prefix)
		fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
		return err
	}

	mode := rooftop.ResolveByURL
	if c.ByPath {
		mode = rooftop.ResolveByPath
	}
	resolver := resolve.NewResolver(deps.Lookup, resolve.WithMode(mode))
	extractor := goquery.NewLinkExtractor()

	var checked, broken int
	for offset := 0; ; offset += auditPageSize {
		contents, err := deps.Contents.FindContents(deps.Ctx, rooftop.ContentFilter{Offset: offset, Limit: auditPageSize})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", rooftop.ErrorMessage(err))
			return err
		}

		for _, content := range contents {
			links, err := extractor.ExtractLinks(content.Body, c.Prefix)
			if err != nil {
				deps.Logger.Warn("skipping unparsable content", "id", content.ID, "err", err)
				continue
			}

			for _, link := range links {
				target, err := resolver.Resolve(deps.Ctx, link.URL, u.Host)
				if err != nil {
					fmt.Fprintf(deps.Stderr, "error: content %d: %s\n", content.ID, rooftop.ErrorMessage(err))
					return err
				}
				if target.Kind == rooftop.LinkContentItem || target.Kind == rooftop.LinkExternal {
					continue
				}
				broken++
				fmt.Fprintf(deps.Stdout, "%d\t%s\t%s\t%s\n", content.ID, target.Kind, link.URL, link.Text)
			}
			checked++
		}

		if len(contents) < auditPageSize {
			break
		}
	}

	fmt.Fprintf(deps.Stderr, "Checked %d content items, %d links without content\n", checked, broken)
	return nil
}
