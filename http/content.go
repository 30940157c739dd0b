package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/rooftopcms/rooftop"
)

const (
	defaultPerPage = 10
	maxPerPage     = 100
)

// handleContentView serves one published item of the type named by the
// collection base, e.g. GET /wp-json/wp/v2/posts/12.
func (s *Server) handleContentView(w http.ResponseWriter, r *http.Request) {
	contentType := rooftop.ContentTypeForRestBase(r.PathValue("base"))

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.Error(w, r, rooftop.Errorf(rooftop.EINVALID, "Invalid ID."))
		return
	}

	c, err := s.ContentService.FindContentByID(r.Context(), id)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	if c.Type != contentType || c.Status != rooftop.StatusPublish {
		s.Error(w, r, rooftop.Errorf(rooftop.ENOTFOUND, "Invalid post ID."))
		return
	}

	resp, err := s.Sanitiser.SanitiseContent(r.Context(), request(r, c))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeCached(w, r, resp)
}

// handleContentIndex serves published items of one type, filtered by
// ?slug= and paged by ?per_page= and ?page=.
func (s *Server) handleContentIndex(w http.ResponseWriter, r *http.Request) {
	contentType := rooftop.ContentTypeForRestBase(r.PathValue("base"))
	q := r.URL.Query()

	perPage, err := intParam(q.Get("per_page"), defaultPerPage)
	if err != nil || perPage < 1 || perPage > maxPerPage {
		s.Error(w, r, rooftop.Errorf(rooftop.EINVALID, "per_page must be between 1 (inclusive) and %d (inclusive)", maxPerPage))
		return
	}
	page, err := intParam(q.Get("page"), 1)
	if err != nil || page < 1 {
		s.Error(w, r, rooftop.Errorf(rooftop.EINVALID, "page must be greater than or equal to 1"))
		return
	}

	status := rooftop.StatusPublish
	filter := rooftop.ContentFilter{
		Type:   &contentType,
		Status: &status,
		Offset: (page - 1) * perPage,
		Limit:  perPage,
	}
	if slug := q.Get("slug"); slug != "" {
		filter.Slug = &slug
	}

	contents, err := s.ContentService.FindContents(r.Context(), filter)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resps := make([]rooftop.Response, 0, len(contents))
	for _, c := range contents {
		resp, err := s.Sanitiser.SanitiseContent(r.Context(), request(r, c))
		if err != nil {
			s.Error(w, r, err)
			return
		}
		resps = append(resps, resp)
	}
	s.writeCached(w, r, resps)
}

// writeCached writes v as JSON with an entity tag derived from the encoded
// body, answering 304 Not Modified when the client already has it.
func (s *Server) writeCached(w http.ResponseWriter, r *http.Request, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		s.Error(w, r, err)
		return
	}

	etag := fmt.Sprintf(`"%016x"`, xxhash.Sum64(buf.Bytes()))
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match == etag || match == "*" {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}
