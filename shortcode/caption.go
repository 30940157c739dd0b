package shortcode

import (
	"html"
	"strconv"
	"strings"
)

// Caption renders [caption]<img ...>Text[/caption] as a figure with a
// figcaption, the way WordPress themes with HTML5 captions do.
func Caption(tag Tag) string {
	media, text := splitCaption(strings.TrimSpace(tag.Content))
	if c, ok := tag.Attrs["caption"]; ok {
		text = c
	}
	if media == "" {
		return tag.Content
	}

	var b strings.Builder
	b.WriteString("<figure")
	if id := tag.Attrs["id"]; id != "" {
		b.WriteString(` id="` + html.EscapeString(id) + `"`)
	}
	class := "wp-caption"
	if align := tag.Attrs["align"]; align != "" {
		class += " " + align
	}
	b.WriteString(` class="` + html.EscapeString(class) + `"`)
	if w, err := strconv.Atoi(tag.Attrs["width"]); err == nil && w > 0 {
		b.WriteString(` style="width: ` + strconv.Itoa(w) + `px"`)
	}
	b.WriteString(">")
	b.WriteString(media)
	if text != "" {
		b.WriteString(`<figcaption class="wp-caption-text">` + text + `</figcaption>`)
	}
	b.WriteString("</figure>")
	return b.String()
}

// splitCaption separates the leading image (optionally wrapped in a link)
// from the caption text that follows it.
func splitCaption(content string) (media, text string) {
	lower := strings.ToLower(content)
	var end int
	switch {
	case strings.HasPrefix(lower, "<a "):
		i := strings.Index(lower, "</a>")
		if i < 0 {
			return "", content
		}
		end = i + len("</a>")
	case strings.HasPrefix(lower, "<img"):
		i := strings.Index(lower, ">")
		if i < 0 {
			return "", content
		}
		end = i + 1
	default:
		return "", content
	}
	return content[:end], strings.TrimSpace(content[end:])
}
