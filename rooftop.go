// Package rooftop turns WordPress-style REST responses into client-renderable
// documents. It strips server-rendered HTML from content responses and
// replaces internal hyperlinks with structured references (a [link ...]
// shortcode or an anchor annotated with data-link-* attributes) that carry
// the identity of the linked content.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, bluemonday/).
package rooftop
