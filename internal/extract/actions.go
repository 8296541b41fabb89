// Package extract implements the extraction-only command: scan a document
// and print what a sweep would classify, without any network call.
package extract

import (
	"bytes"
	"log/slog"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/urfave/cli/v2"

	"github.com/pagetools/brandsweep/internal/common"
	"github.com/pagetools/brandsweep/models"
	"github.com/pagetools/brandsweep/pkg/extractor"
)

// EntrySummary is the printable shape of one extracted entry.
type EntrySummary struct {
	Brand   string `json:"brand"`
	Element string `json:"element"`
}

func ExtractAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	source := c.String("source")
	if source == "" {
		return cli.Exit("no source provided via --source flag", 1)
	}

	chain := models.DefaultSelectorChain()
	if c.IsSet("selectors") {
		loaded, err := models.LoadSelectorChain(c.String("selectors"))
		if err != nil {
			logger.Error("failed to load selector chain", "error", err)
			os.Exit(2)
		}
		chain = loaded
	}

	raw, err := common.LoadSource(source, c.String("cache-dir"), 24*time.Hour, logger)
	if err != nil {
		logger.Error("failed to load source", "source", source, "error", err)
		os.Exit(1)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		logger.Error("failed to parse HTML", "source", source, "error", err)
		os.Exit(1)
	}

	entries := extractor.Extract(doc, chain)
	logger.Info("extraction complete", "entries", len(entries))

	summaries := make([]EntrySummary, 0, len(entries))
	for _, e := range entries {
		summaries = append(summaries, EntrySummary{
			Brand:   e.Brand,
			Element: goquery.NodeName(e.Listing),
		})
	}

	return common.PrintJSON(summaries)
}
