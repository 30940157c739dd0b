// Package shortcode expands WordPress-style bracket macros in HTML.
package shortcode

import (
	"regexp"
	"strings"

	"github.com/rooftopcms/rooftop"
)

var (
	openTag  = regexp.MustCompile(`\[([a-zA-Z0-9_\-]+)((?:\s[^\]]*)?)\]`)
	attrPair = regexp.MustCompile(`([\w\-]+)\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s'"]+))`)
)

// Tag is one occurrence of a shortcode.
type Tag struct {
	Name  string
	Attrs map[string]string

	// Content is the expanded text between [name] and [/name].
	Content string

	// Enclosing is set when the tag had a closing [/name].
	Enclosing bool
}

// Handler renders a shortcode occurrence.
type Handler func(tag Tag) string

// Expander replaces registered shortcodes with the output of their handlers.
// Unregistered shortcodes, including [link ...] placeholders, are left as is.
// Handlers must be registered before Expand is called concurrently.
type Expander struct {
	handlers map[string]Handler
}

// NewExpander creates an Expander with no handlers.
func NewExpander() *Expander {
	return &Expander{handlers: make(map[string]Handler)}
}

// Register adds or replaces the handler for name.
func (e *Expander) Register(name string, h Handler) {
	e.handlers[name] = h
}

// Filter returns Expand as a fragment filter.
func (e *Expander) Filter() rooftop.FragmentFilter {
	return e.Expand
}

// Expand replaces every registered shortcode in s.
func (e *Expander) Expand(s string) string {
	if len(e.handlers) == 0 || !strings.Contains(s, "[") {
		return s
	}

	var b strings.Builder
	pos := 0
	for pos < len(s) {
		loc := openTag.FindStringSubmatchIndex(s[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		name := s[pos+loc[2] : pos+loc[3]]
		rawAttrs := strings.TrimSpace(s[pos+loc[4] : pos+loc[5]])

		h, ok := e.handlers[name]
		if !ok {
			b.WriteString(s[pos:end])
			pos = end
			continue
		}
		b.WriteString(s[pos:start])

		selfClosing := strings.HasSuffix(rawAttrs, "/")
		tag := Tag{
			Name:  name,
			Attrs: ParseAttrs(strings.TrimSuffix(rawAttrs, "/")),
		}

		next := end
		if !selfClosing {
			closing := "[/" + name + "]"
			if i := strings.Index(s[end:], closing); i >= 0 {
				tag.Content = e.Expand(s[end : end+i])
				tag.Enclosing = true
				next = end + i + len(closing)
			}
		}

		b.WriteString(h(tag))
		pos = next
	}
	b.WriteString(s[pos:])
	return b.String()
}

// ParseAttrs parses name=value pairs; values may be double quoted, single
// quoted or bare. Positional values are ignored.
func ParseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range attrPair.FindAllStringSubmatch(s, -1) {
		attrs[strings.ToLower(m[1])] = m[2] + m[3] + m[4]
	}
	return attrs
}
