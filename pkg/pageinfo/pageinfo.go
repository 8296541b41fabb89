// Package pageinfo recovers page-level context (title, site name) from the
// raw document so the classifier prompt can say what page the brands came
// from.
package pageinfo

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/go-shiori/go-readability"
)

// Info holds the readability-derived page context. All fields are best
// effort; a page that defeats readability yields nil rather than an error.
type Info struct {
	Title    string
	SiteName string
	Excerpt  string
}

// FromHTML runs readability over the raw document. sourceURL may be a file
// path; anything that does not parse as an absolute URL falls back to a
// placeholder, which readability only uses to resolve relative links.
func FromHTML(raw []byte, sourceURL string) *Info {
	u, err := url.Parse(sourceURL)
	if err != nil || u.Scheme == "" {
		u, _ = url.Parse("https://localhost/")
	}

	parser := readability.NewParser()
	article, err := parser.Parse(bytes.NewReader(raw), u)
	if err != nil {
		return nil
	}

	if article.Title == "" && article.SiteName == "" {
		return nil
	}

	return &Info{
		Title:    article.Title,
		SiteName: article.SiteName,
		Excerpt:  article.Excerpt,
	}
}

// ContextLine renders the single prompt line describing the page. Safe to
// call on a nil Info; it returns an empty string.
func (i *Info) ContextLine() string {
	if i == nil {
		return ""
	}
	switch {
	case i.Title != "" && i.SiteName != "":
		return fmt.Sprintf("The brands below were scraped from %q on %s.", i.Title, i.SiteName)
	case i.Title != "":
		return fmt.Sprintf("The brands below were scraped from a page titled %q.", i.Title)
	default:
		return fmt.Sprintf("The brands below were scraped from a page on %s.", i.SiteName)
	}
}
