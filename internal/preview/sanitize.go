package preview

import (
	"html/template"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans upstream HTML before it is rendered as markup.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// NewSanitizer allows the formatting a job excerpt uses (paragraphs, lists,
// emphasis, links) and strips scripts, styles and event handlers.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: p}
}

func (s *Sanitizer) Sanitize(input string) string {
	return s.policy.Sanitize(input)
}

// HTML returns input sanitized and marked safe for html/template.
func (s *Sanitizer) HTML(input string) template.HTML {
	return template.HTML(s.policy.Sanitize(input))
}
