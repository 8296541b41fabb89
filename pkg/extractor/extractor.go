// Package extractor scans a parsed document for brand-labeled listing
// entries using a configurable selector chain.
package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pagetools/brandsweep/models"
)

// Extract walks every listing matched by the chain and derives one entry
// per listing that carries a brand. Structural mismatches are expected:
// listings without the title step, without the brand step, or with only
// whitespace text are skipped silently. Output preserves document order and
// never contains the same listing node twice.
func Extract(doc *goquery.Document, chain models.SelectorChain) []models.Entry {
	var entries []models.Entry
	seen := make(map[*html.Node]bool)

	doc.Find(chain.Listing).Each(func(_ int, listing *goquery.Selection) {
		if len(listing.Nodes) == 0 || seen[listing.Nodes[0]] {
			return
		}

		title := listing.Find(chain.Title).First()
		if title.Length() == 0 {
			return
		}

		brandNode := title
		if chain.Brand != "" {
			brandNode = title.Find(chain.Brand).First()
			if brandNode.Length() == 0 {
				return
			}
		}

		brand := strings.TrimSpace(brandNode.Text())
		if brand == "" {
			return
		}

		seen[listing.Nodes[0]] = true
		entries = append(entries, models.Entry{Brand: brand, Listing: listing})
	})

	return entries
}

// Brands returns the distinct brand labels in first-seen order. This is the
// order the classifier prompt enumerates them in.
func Brands(entries []models.Entry) []string {
	var brands []string
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Brand] {
			continue
		}
		seen[e.Brand] = true
		brands = append(brands, e.Brand)
	}
	return brands
}
