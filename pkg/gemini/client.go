// Package gemini classifies brand labels with a single call to the
// generative-language generateContent endpoint.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pagetools/brandsweep/models"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.0-flash"

	// DefaultCriteria is the classification instruction used when the
	// caller does not supply one.
	DefaultCriteria = "Delete brands that look like generic, unpronounceable, or throwaway drop-shipping labels. Keep established or recognizable brands."
)

// ResponseShapeError reports a generateContent response whose JSON did not
// contain the expected candidates/content/parts/text structure.
type ResponseShapeError struct {
	Raw []byte
}

func (e *ResponseShapeError) Error() string {
	return "unexpected generateContent response shape"
}

// DecisionParseError reports generated text that was not a valid JSON
// object after fence stripping. Raw holds the text as extracted from the
// response, before cleaning.
type DecisionParseError struct {
	Raw string
	Err error
}

func (e *DecisionParseError) Error() string {
	return fmt.Sprintf("generated text is not a JSON decision object: %v", e.Err)
}

func (e *DecisionParseError) Unwrap() error { return e.Err }

// Client issues generateContent calls. The zero value is not usable; use
// NewClient. No timeout is configured beyond the transport default and no
// retries are attempted: classification is one round trip or a failure.
type Client struct {
	BaseURL    string
	Model      string
	Criteria   string
	HTTPClient *http.Client
}

func NewClient(model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		BaseURL:    DefaultBaseURL,
		Model:      model,
		Criteria:   DefaultCriteria,
		HTTPClient: &http.Client{},
	}
}

// Request/response wire structures for the generateContent endpoint.
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// BuildPrompt constructs the single instruction sent to the model. Brands
// are enumerated comma-separated in the order given (first-seen extraction
// order); pageContext, when non-empty, is prepended as one context line.
func (c *Client) BuildPrompt(brands []string, pageContext string) string {
	var b strings.Builder
	b.WriteString("You are cleaning up a marketplace search results page.\n")
	if pageContext != "" {
		b.WriteString(pageContext)
		b.WriteString("\n")
	}
	b.WriteString(c.Criteria)
	b.WriteString("\n\nBrands: ")
	b.WriteString(strings.Join(brands, ", "))
	b.WriteString("\n\nRespond with a strict JSON object whose keys are exactly the brand strings given above and whose values are each exactly \"keep\" or \"delete\". Do not include any text outside the JSON object.")
	return b.String()
}

// Classify sends the brand list for classification and returns the decision
// map parsed from the generated text. An empty brand list short-circuits:
// no network call is made and an empty map is returned. Decision values are
// not validated here; anything other than the literal "delete" is fail-open
// downstream.
func (c *Client) Classify(ctx context.Context, brands []string, apiKey, pageContext string) (models.DecisionMap, error) {
	if len(brands) == 0 {
		return nil, nil
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: c.BuildPrompt(brands, pageContext)}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.BaseURL, c.Model, url.QueryEscape(apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generateContent request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generateContent returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return nil, &ResponseShapeError{Raw: raw}
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 || gr.Candidates[0].Content.Parts[0].Text == "" {
		return nil, &ResponseShapeError{Raw: raw}
	}

	text := gr.Candidates[0].Content.Parts[0].Text
	cleaned := UnwrapFence(text)

	var parsed map[string]any
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return nil, &DecisionParseError{Raw: text, Err: err}
	}

	// Non-string values are dropped rather than rejected: a missing key is
	// an implicit keep, so this matches the fail-open lookup in the applier.
	decisions := make(models.DecisionMap, len(parsed))
	for brand, v := range parsed {
		if s, ok := v.(string); ok {
			decisions[brand] = s
		}
	}

	return decisions, nil
}
