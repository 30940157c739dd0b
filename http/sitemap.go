package http

import (
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/rooftopcms/rooftop"
)

// sitemapPageSize is the number of items read per query while building a sitemap.
const sitemapPageSize = 500

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// handleSitemap serves a urlset of every published item.
func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) {
	site := request(r, nil).LocalHostPrefix()

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", sitemapNamespace)

	status := rooftop.StatusPublish
	for offset := 0; ; offset += sitemapPageSize {
		contents, err := s.ContentService.FindContents(r.Context(), rooftop.ContentFilter{
			Status: &status,
			Offset: offset,
			Limit:  sitemapPageSize,
		})
		if err != nil {
			s.Error(w, r, err)
			return
		}
		for _, c := range contents {
			u := urlset.CreateElement("url")
			u.CreateElement("loc").SetText(site + rooftop.NormalizePath(c.Path))
			u.CreateElement("lastmod").SetText(c.UpdatedAt.UTC().Format(time.RFC3339))
		}
		if len(contents) < sitemapPageSize {
			break
		}
	}

	doc.Indent(2)
	w.Header().Set("Content-Type", "application/xml; charset=UTF-8")
	_, _ = doc.WriteTo(w)
}
