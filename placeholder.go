package rooftop

import (
	"strconv"
	"strings"
)

// Field is one key/value pair of a placeholder.
type Field struct {
	Key   string
	Value string
}

// ShortcodeFields returns the fields of a [link ...] shortcode for an
// internal target, ending with the link text as content. Ancestor ids are
// joined with commas.
func ShortcodeFields(t *LinkTarget, text string) []Field {
	var fields []Field
	switch t.Kind {
	case LinkContentItem:
		fields = append(fields,
			Field{Key: "type", Value: t.Type},
			Field{Key: "id", Value: strconv.FormatInt(t.ID, 10)},
		)
		if len(t.Ancestors) > 0 {
			fields = append(fields, Field{Key: "ancestors", Value: JoinIDs(t.Ancestors)})
		}
	case LinkRelativePage:
		fields = append(fields,
			Field{Key: "type", Value: TypeRelative},
			Field{Key: "path", Value: t.Path},
		)
	default:
		return nil
	}
	return append(fields, Field{Key: "content", Value: text})
}

// FormatShortcode renders fields as [link k1=v1:k2=v2:...].
func FormatShortcode(fields []Field) string {
	pairs := make([]string, len(fields))
	for i, f := range fields {
		pairs[i] = f.Key + "=" + f.Value
	}
	return "[link " + strings.Join(pairs, ":") + "]"
}

// AttributeFields returns the fields emitted as data-link-* attributes for
// an internal target. Ancestor slugs are taken from the path segments that
// precede the final one. Relative targets are reinterpreted from their path
// shape. Path and the raw ancestor list are never emitted.
func AttributeFields(t *LinkTarget) []Field {
	switch t.Kind {
	case LinkContentItem:
		fields := []Field{
			{Key: "type", Value: t.Type},
			{Key: "id", Value: strconv.FormatInt(t.ID, 10)},
		}
		if t.Slug != "" {
			fields = append(fields, Field{Key: "slug", Value: t.Slug})
		}
		if len(t.Ancestors) > 0 {
			fields = append(fields,
				Field{Key: "ancestor-slugs", Value: strings.Join(AncestorSlugs(t.Path, len(t.Ancestors)), ",")},
				Field{Key: "ancestor-ids", Value: JoinIDs(t.Ancestors)},
			)
		}
		return fields
	case LinkRelativePage:
		class := ClassifyPath(t.Path)
		fields := []Field{{Key: "type", Value: class.Type}}
		if class.Slug != "" {
			fields = append(fields, Field{Key: "slug", Value: class.Slug})
		}
		return fields
	default:
		return nil
	}
}

// JoinIDs joins ids with commas.
func JoinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
