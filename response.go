package rooftop

import (
	"context"
	"encoding/json"
	"html"
	"strconv"
	"time"
)

// Rendered holds server-rendered HTML.
type Rendered struct {
	Rendered string `json:"rendered"`
}

// Text is a response field that carries server-rendered HTML, the stored
// source, or both. Nil members are omitted from the JSON form.
type Text struct {
	Rendered *string `json:"rendered,omitempty"`
	Encoded  *string `json:"json_encoded,omitempty"`
}

// Title is the title of a response. A flat title encodes as the raw string
// instead of a rendered object.
type Title struct {
	Rendered string
	Raw      string
	Flat     bool
}

// MarshalJSON implements json.Marshaler.
func (t Title) MarshalJSON() ([]byte, error) {
	if t.Flat {
		return json.Marshal(t.Raw)
	}
	return json.Marshal(Rendered{Rendered: t.Rendered})
}

// Link is the permalink of a response, either as a URL or, once resolved,
// as a link target.
type Link struct {
	URL    string
	Target *LinkTarget
}

// MarshalJSON implements json.Marshaler.
func (l Link) MarshalJSON() ([]byte, error) {
	if l.Target != nil {
		return l.Target.MarshalJSON()
	}
	return json.Marshal(l.URL)
}

// Href is one entry of the _links map.
type Href struct {
	Href string `json:"href"`
}

// Response is the REST representation of a content item.
//
// Responses are values: a Transform receives a copy and returns a new
// value. Transforms replace fields instead of writing through the pointers,
// slices or maps they share with their input.
type Response struct {
	ID       int64             `json:"id"`
	Type     string            `json:"type"`
	Slug     string            `json:"slug"`
	Status   string            `json:"status"`
	Parent   int64             `json:"parent"`
	Date     time.Time         `json:"date"`
	Modified time.Time         `json:"modified"`
	GUID     *Rendered         `json:"guid,omitempty"`
	Title    Title             `json:"title"`
	Content  Text              `json:"content"`
	Excerpt  Text              `json:"excerpt"`
	Link     Link              `json:"link"`
	Links    map[string][]Href `json:"_links,omitempty"`
}

// NewResponse builds the unsanitised response for c, with absolute URLs
// rooted at siteURL (scheme and host, no trailing slash).
func NewResponse(c *Content, siteURL string) Response {
	rendered := c.Body
	excerpt := c.Excerpt
	self := siteURL + "/wp-json/wp/v2/" + RestBase(c.Type)

	return Response{
		ID:       c.ID,
		Type:     c.Type,
		Slug:     c.Slug,
		Status:   c.Status,
		Parent:   c.ParentID,
		Date:     c.CreatedAt,
		Modified: c.UpdatedAt,
		GUID:     &Rendered{Rendered: siteURL + "/?p=" + strconv.FormatInt(c.ID, 10)},
		Title:    Title{Rendered: html.EscapeString(c.Title), Raw: c.Title},
		Content:  Text{Rendered: &rendered},
		Excerpt:  Text{Rendered: &excerpt},
		Link:     Link{URL: siteURL + NormalizePath(c.Path)},
		Links: map[string][]Href{
			"self":       {{Href: self + "/" + strconv.FormatInt(c.ID, 10)}},
			"collection": {{Href: self}},
		},
	}
}

// RestBase returns the REST collection name of a content type.
func RestBase(contentType string) string {
	switch contentType {
	case TypePost:
		return "posts"
	case TypePage:
		return "pages"
	default:
		return contentType
	}
}

// ContentTypeForRestBase is the inverse of RestBase.
func ContentTypeForRestBase(base string) string {
	switch base {
	case "posts":
		return TypePost
	case "pages":
		return TypePage
	default:
		return base
	}
}

// Request is the context a response is sanitised in.
type Request struct {
	Scheme string
	Host   string

	// Content is the stored item the response was built from.
	Content *Content
}

// LocalHostPrefix returns the scheme and host links to this site start with.
func (r *Request) LocalHostPrefix() string {
	scheme := r.Scheme
	if scheme == "" {
		scheme = "http"
	}
	return scheme + "://" + r.Host
}

// Transform is one stage of the response pipeline.
type Transform func(ctx context.Context, req *Request, resp Response) (Response, error)

// Pipeline is an ordered list of transforms.
type Pipeline []Transform

// Apply runs resp through every transform in order, stopping at the first error.
func (p Pipeline) Apply(ctx context.Context, req *Request, resp Response) (Response, error) {
	for _, t := range p {
		var err error
		if resp, err = t(ctx, req, resp); err != nil {
			return Response{}, err
		}
	}
	return resp, nil
}

// MenuResponse is the REST representation of a menu.
type MenuResponse struct {
	ID    int64              `json:"ID"`
	Name  string             `json:"name"`
	Slug  string             `json:"slug"`
	Items []MenuItemResponse `json:"items"`
}

// MenuItemResponse is the REST representation of a menu item.
type MenuItemResponse struct {
	ID     int64  `json:"id"`
	Parent int64  `json:"parent"`
	Order  int    `json:"order"`
	Title  string `json:"title"`
	URL    Link   `json:"url"`
}

// NewMenuResponse builds the unsanitised response for m.
func NewMenuResponse(m *Menu) *MenuResponse {
	resp := &MenuResponse{ID: m.ID, Name: m.Name, Slug: m.Slug, Items: make([]MenuItemResponse, len(m.Items))}
	for i, item := range m.Items {
		resp.Items[i] = MenuItemResponse{
			ID:     item.ID,
			Parent: item.ParentID,
			Order:  item.Position,
			Title:  item.Title,
			URL:    Link{URL: item.URL},
		}
	}
	return resp
}

// ResponseSanitiser produces client-renderable responses.
type ResponseSanitiser interface {
	// SanitiseContent builds and sanitises the response for req.Content.
	SanitiseContent(ctx context.Context, req *Request) (Response, error)

	// SanitiseMenu replaces each item's URL with its link target.
	SanitiseMenu(ctx context.Context, req *Request, menu *Menu) (*MenuResponse, error)
}
