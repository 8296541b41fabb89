package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SelectorChain describes how listing entries are located in a document.
// Each step is a CSS selector applied within the match of the previous one.
// Title and Brand are missing-tolerant: a listing where either step matches
// nothing is skipped, never an error. An empty Brand step means the brand
// text is taken from the title element itself.
type SelectorChain struct {
	Listing string `yaml:"listing"`
	Title   string `yaml:"title"`
	Brand   string `yaml:"brand,omitempty"`
}

// DefaultSelectorChain matches the marketplace result markup this tool was
// originally written against: ARIA listitem cards with a title marker whose
// first nested block holds the brand name.
func DefaultSelectorChain() SelectorChain {
	return SelectorChain{
		Listing: `[role="listitem"]`,
		Title:   `[data-testid="listing-card-title"]`,
		Brand:   `div:first-child`,
	}
}

// LoadSelectorChain reads a selector chain from a YAML file. Listing and
// Title fall back to the default chain when omitted; Brand is taken as
// given, so a config that leaves it out reads the brand from the title
// element's own text.
func LoadSelectorChain(path string) (SelectorChain, error) {
	chain := DefaultSelectorChain()

	data, err := os.ReadFile(path)
	if err != nil {
		return chain, fmt.Errorf("failed to read selector config: %w", err)
	}

	var loaded SelectorChain
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return chain, fmt.Errorf("failed to parse selector config: %w", err)
	}

	if loaded.Listing != "" {
		chain.Listing = loaded.Listing
	}
	if loaded.Title != "" {
		chain.Title = loaded.Title
	}
	chain.Brand = loaded.Brand

	return chain, nil
}
