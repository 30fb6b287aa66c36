// Package sanitize holds the HTML policy applied to rendered previews.
package sanitize

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once

	classRe       = regexp.MustCompile(`^[a-zA-Z0-9 _-]*$`)
	idRe          = regexp.MustCompile(`^[\p{L}\p{N}_-]+$`)
	calloutTypeRe = regexp.MustCompile(`^(NOTE|TIP|IMPORTANT|WARNING|CAUTION)$`)
)

// Policy returns the shared policy. It admits the markup the preview
// renderer emits and strips everything else; bluemonday policies are safe
// for concurrent use once built.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = newPolicy()
	})
	return policy
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(
		"p", "br", "hr", "blockquote", "pre", "code", "span", "div",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"strong", "em", "del",
		"table", "thead", "tbody", "tr", "th", "td",
		"figure", "figcaption",
	)
	p.AllowAttrs("class").Matching(classRe).Globally()
	p.AllowAttrs("id").Matching(idRe).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("data-callout").Matching(calloutTypeRe).OnElements("div")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")

	p.AllowStandardURLs()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("title").Matching(bluemonday.Paragraph).OnElements("a", "img")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^[a-z ]+$`)).OnElements("a")
	p.AllowImages()
	p.AllowAttrs("src").OnElements("img")
	p.AllowAttrs("alt").Matching(bluemonday.Paragraph).OnElements("img")

	return p
}

// HTML sanitizes rendered markup.
func HTML(s string) string {
	return Policy().Sanitize(s)
}
