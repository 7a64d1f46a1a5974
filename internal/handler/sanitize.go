package handler

import "github.com/microcosm-cc/bluemonday"

// newContentPolicy builds the sanitizer applied to admin-supplied rich
// text (category descriptions, policy page content).  It allows the basic
// formatting the editor produces and strips everything else, including
// scripts and event handlers.
func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"h1", "h2", "h3", "h4", "h5", "h6",
		"p", "strong", "em", "u", "s", "blockquote", "code", "pre",
		"span", "ul", "ol", "li", "br", "hr", "a",
	)
	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowAttrs("style").OnElements("span", "p", "h1", "h2", "h3", "h4", "h5", "h6")
	p.RequireNoReferrerOnLinks(true)
	return p
}
