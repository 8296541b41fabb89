package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/pagetools/brandsweep/internal/common"
	"github.com/pagetools/brandsweep/internal/extract"
	"github.com/pagetools/brandsweep/internal/keycmd"
	"github.com/pagetools/brandsweep/internal/runlog"
	"github.com/pagetools/brandsweep/internal/sweep"
	"github.com/pagetools/brandsweep/pkg/gemini"
)

func main() {
	app := &cli.App{
		Name:  "brandsweep",
		Usage: "prune marketplace listing pages by LLM-classified brand",
		Commands: []*cli.Command{
			{
				Name:   "sweep",
				Usage:  "extract, classify, and remove 'delete' listings from a page",
				Action: sweep.SweepAction,
				Flags: append(sourceFlags(),
					&cli.StringFlag{
						Name:  "api-key",
						Usage: "Gemini API key (overrides the stored credential)",
					},
					&cli.StringFlag{
						Name:  "model",
						Value: gemini.DefaultModel,
						Usage: "generative model ID",
					},
					&cli.StringFlag{
						Name:  "criteria",
						Usage: "classification instruction given to the model",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "write the pruned document here (default: stdout)",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "print the decision map instead of mutating the document",
					},
					&cli.StringFlag{
						Name:  "max-age",
						Value: "24h",
						Usage: "max age of cached HTML before refetching",
					},
					&cli.BoolFlag{
						Name:  "force-fetch",
						Usage: "ignore cached HTML",
					},
				),
			},
			{
				Name:   "extract",
				Usage:  "print the entries a sweep would classify, no network call",
				Action: extract.ExtractAction,
				Flags:  sourceFlags(),
			},
			{
				Name:  "key",
				Usage: "manage the stored API credential",
				Subcommands: []*cli.Command{
					{
						Name:      "set",
						Usage:     "store an API key",
						ArgsUsage: "<api-key>",
						Action:    keycmd.KeySetAction,
					},
					{
						Name:   "show",
						Usage:  "show the stored API key (masked)",
						Action: keycmd.KeyShowAction,
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "reveal",
								Usage: "print the key unmasked",
							},
						},
					},
				},
			},
			{
				Name:   "runs",
				Usage:  "list recent sweep runs",
				Action: runlog.RunsAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "max runs to list",
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// sourceFlags are shared by every command that loads a document.
func sourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "source",
			Aliases: []string{"s"},
			Usage:   "URL or local HTML file to sweep",
		},
		&cli.StringFlag{
			Name:  "selectors",
			Usage: "YAML file overriding the listing/title/brand selector chain",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Value: common.DefaultCacheDir,
			Usage: "directory for cached fetched HTML",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "log errors only",
		},
	}
}
