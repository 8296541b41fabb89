package models

import "github.com/PuerkitoBio/goquery"

// Decision values the classifier is asked to return. The applier only acts
// on an exact DecisionDelete; every other value (including values outside
// this enum) leaves the listing in place.
const (
	DecisionKeep   = "keep"
	DecisionDelete = "delete"
)

// Entry pairs a brand label with the listing node it was extracted from.
// The selection is a transient handle into the parsed document; entries are
// consumed once by the applier and never persisted.
type Entry struct {
	Brand   string
	Listing *goquery.Selection
}

// DecisionMap maps a brand label to its classification decision.
type DecisionMap map[string]string
