package sweep

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/urfave/cli/v2"

	"github.com/pagetools/brandsweep/internal/common"
	"github.com/pagetools/brandsweep/models"
	"github.com/pagetools/brandsweep/pkg/applier"
	"github.com/pagetools/brandsweep/pkg/credstore"
	"github.com/pagetools/brandsweep/pkg/extractor"
	"github.com/pagetools/brandsweep/pkg/gemini"
	"github.com/pagetools/brandsweep/pkg/pageinfo"
	"github.com/pagetools/brandsweep/pkg/storage"
)

// SweepAction runs the full pipeline: resolve credential, load document,
// extract entries, classify brands, remove "delete" listings, write the
// pruned document. Every failure is logged and turned into an exit code;
// nothing propagates as a panic. Deletions only happen after a fully
// successful classification, so network and parse failures cause zero
// mutations.
func SweepAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	var maxAge time.Duration
	if !c.Bool("force-fetch") {
		var err error
		maxAge, err = time.ParseDuration(c.String("max-age"))
		if err != nil {
			logger.Error("invalid max-age duration", "error", err)
			os.Exit(2)
		}
	}

	config := configFromFlags(c, maxAge)
	if config.Source == "" {
		return cli.Exit("no source provided via --source flag", 1)
	}

	store, err := credstore.Open()
	if err != nil {
		logger.Error("failed to open credential store", "error", err)
		os.Exit(2)
	}
	defer store.Close()

	apiKey, err := resolveAPIKey(c.String("api-key"), store, terminalPrompt())
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			logger.Error("no credential: pass --api-key or run 'brandsweep key set'")
		} else {
			logger.Error("failed to resolve credential", "error", err)
		}
		os.Exit(1)
	}

	chain := models.DefaultSelectorChain()
	if c.IsSet("selectors") {
		chain, err = models.LoadSelectorChain(c.String("selectors"))
		if err != nil {
			logger.Error("failed to load selector chain", "error", err)
			os.Exit(2)
		}
	}

	raw, err := common.LoadSource(config.Source, config.CacheDir, config.MaxAge, logger)
	if err != nil {
		logger.Error("failed to load source", "source", config.Source, "error", err)
		os.Exit(1)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		logger.Error("failed to parse HTML", "source", config.Source, "error", err)
		os.Exit(1)
	}

	entries := extractor.Extract(doc, chain)
	brands := extractor.Brands(entries)
	logger.Info("extraction complete", "entries", len(entries), "brands", len(brands))

	if len(brands) == 0 {
		logger.Info("nothing to classify")
		recordRun(logger, store, credstore.Run{
			Source:   config.Source,
			DryRun:   config.DryRun,
			Duration: time.Since(startTime),
		})
		return nil
	}

	info := pageinfo.FromHTML(raw, config.Source)

	client := gemini.NewClient(config.Model)
	if config.Criteria != "" {
		client.Criteria = config.Criteria
	}

	decisions, err := client.Classify(c.Context, brands, apiKey, info.ContextLine())
	if err != nil {
		logClassifyError(logger, err)
		os.Exit(1)
	}
	logger.Info("classification complete", "decisions", len(decisions))

	removed := 0
	if config.DryRun {
		if err := common.PrintJSON(decisions); err != nil {
			return err
		}
	} else {
		removed = applier.Apply(entries, decisions)
		logger.Info("applied decisions", "removed", removed)

		html, err := doc.Html()
		if err != nil {
			logger.Error("failed to render document", "error", err)
			os.Exit(1)
		}

		if config.OutputPath != "" {
			s := &storage.Storage{}
			if err := s.SaveFile(config.OutputPath, []byte(html)); err != nil {
				logger.Error("failed to write output", "path", config.OutputPath, "error", err)
				os.Exit(1)
			}
			fmt.Fprintf(os.Stderr, "Pruned document written to %s (%d of %d listings removed)\n",
				config.OutputPath, removed, len(entries))
		} else {
			fmt.Fprintln(os.Stdout, html)
		}
	}

	recordRun(logger, store, credstore.Run{
		Source:       config.Source,
		EntryCount:   len(entries),
		BrandCount:   len(brands),
		RemovedCount: removed,
		DryRun:       config.DryRun,
		Duration:     time.Since(startTime),
	})

	return nil
}

// recordRun persists the run outcome. Every sweep that reaches the end of
// the pipeline is recorded, including ones that found nothing to classify.
// Failure to record only warns: the sweep itself already succeeded.
func recordRun(logger *slog.Logger, store *credstore.Store, r credstore.Run) {
	if _, err := store.RecordRun(r); err != nil {
		logger.Warn("failed to record run", "error", err)
	}
}

func configFromFlags(c *cli.Context, maxAge time.Duration) *models.SweepConfig {
	return &models.SweepConfig{
		Source:     c.String("source"),
		OutputPath: c.String("output"),
		Model:      c.String("model"),
		Criteria:   c.String("criteria"),
		DryRun:     c.Bool("dry-run"),
		CacheDir:   c.String("cache-dir"),
		MaxAge:     maxAge,
		ForceFetch: c.Bool("force-fetch"),
	}
}

// logClassifyError logs classification failures with enough raw payload to
// diagnose the response, keeping the taxonomy distinct in the log stream.
func logClassifyError(logger *slog.Logger, err error) {
	var shapeErr *gemini.ResponseShapeError
	var parseErr *gemini.DecisionParseError

	switch {
	case errors.As(err, &shapeErr):
		logger.Error("unexpected response shape", "error", err,
			"raw", common.Truncate(string(shapeErr.Raw), 2048))
	case errors.As(err, &parseErr):
		logger.Error("failed to parse decisions", "error", err,
			"raw", common.Truncate(parseErr.Raw, 2048))
	default:
		logger.Error("classification failed", "error", err)
	}
}
