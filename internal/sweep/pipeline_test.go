package sweep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/pagetools/brandsweep/models"
	"github.com/pagetools/brandsweep/pkg/applier"
	"github.com/pagetools/brandsweep/pkg/extractor"
	"github.com/pagetools/brandsweep/pkg/gemini"
)

const resultsPage = `<!DOCTYPE html>
<html><body>
  <div role="listitem" id="acme1"><div class="title"><span class="brand">Acme</span></div></div>
  <div role="listitem" id="acme2"><div class="title"><span class="brand">Acme</span></div></div>
  <div role="listitem" id="globex"><div class="title"><span class="brand">Globex</span></div></div>
</body></html>`

// TestPipelineEndToEnd drives extract -> classify -> apply against a stub
// generateContent server: both Acme listings go, the Globex listing stays.
func TestPipelineEndToEnd(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{
						"text": "```json\n{\"Acme\":\"delete\",\"Globex\":\"keep\"}\n```",
					}},
				},
			}},
		})
		fmt.Fprint(w, string(body))
	}))
	defer server.Close()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resultsPage))
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}

	chain := models.SelectorChain{
		Listing: `[role="listitem"]`,
		Title:   ".title",
		Brand:   ".brand",
	}
	entries := extractor.Extract(doc, chain)
	if len(entries) != 3 {
		t.Fatalf("extracted %d entries, want 3", len(entries))
	}

	brands := extractor.Brands(entries)
	if len(brands) != 2 || brands[0] != "Acme" || brands[1] != "Globex" {
		t.Fatalf("Brands() = %v, want [Acme Globex]", brands)
	}

	client := gemini.NewClient("")
	client.BaseURL = server.URL

	decisions, err := client.Classify(context.Background(), brands, "test-key", "")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}

	removed := applier.Apply(entries, decisions)
	if removed != 2 {
		t.Errorf("Apply() removed %d listings, want 2", removed)
	}

	if doc.Find("#acme1, #acme2").Length() != 0 {
		t.Error("Acme listings should have been removed")
	}
	if doc.Find("#globex").Length() != 1 {
		t.Error("Globex listing should have survived")
	}

	html, err := doc.Html()
	if err != nil {
		t.Fatalf("failed to render document: %v", err)
	}
	if strings.Contains(html, "acme1") || !strings.Contains(html, "globex") {
		t.Error("rendered document does not reflect the applied decisions")
	}
}

// TestPipelineClassificationFailureDeletesNothing checks the all-or-nothing
// property: when the model response cannot be parsed, no mutation happens.
func TestPipelineClassificationFailureDeletesNothing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := json.Marshal(map[string]any{
			"candidates": []any{map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": "not json at all"}},
				},
			}},
		})
		fmt.Fprint(w, string(body))
	}))
	defer server.Close()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resultsPage))
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}

	chain := models.SelectorChain{Listing: `[role="listitem"]`, Title: ".title", Brand: ".brand"}
	entries := extractor.Extract(doc, chain)

	client := gemini.NewClient("")
	client.BaseURL = server.URL

	if _, err := client.Classify(context.Background(), extractor.Brands(entries), "test-key", ""); err == nil {
		t.Fatal("Classify() error = nil, want DecisionParseError")
	}

	// Classification failed before Apply ran: the document is untouched.
	if doc.Find(`[role="listitem"]`).Length() != 3 {
		t.Error("listings mutated despite classification failure")
	}
}
