// Package bluemonday filters rendered HTML through a bluemonday policy.
package bluemonday

import (
	"github.com/microcosm-cc/bluemonday"
	"github.com/rooftopcms/rooftop"
)

// Policy strips scripts, event handlers and unsafe URLs from stored bodies
// before their links are rewritten. Data attributes and classes written by
// authors survive.
type Policy struct {
	p *bluemonday.Policy
}

// NewPolicy creates a Policy based on bluemonday's user generated content
// policy, extended with data attributes, classes and figures.
func NewPolicy() *Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataAttributes()
	p.AllowAttrs("class").Globally()
	p.AllowElements("figure", "figcaption")
	p.RequireNoFollowOnLinks(false)
	return &Policy{p: p}
}

// Sanitise returns s with everything the policy disallows removed.
func (p *Policy) Sanitise(s string) string {
	return p.p.Sanitize(s)
}

// Filter returns Sanitise as a fragment filter.
func (p *Policy) Filter() rooftop.FragmentFilter {
	return p.Sanitise
}
