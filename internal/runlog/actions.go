// Package runlog implements the sweep history command.
package runlog

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pagetools/brandsweep/pkg/credstore"
)

func RunsAction(c *cli.Context) error {
	store, err := credstore.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-8s %-8s %-8s %-8s %-40s\n",
		"ID", "Created", "Entries", "Brands", "Removed", "Dry", "Source")
	fmt.Println(strings.Repeat("-", 104))

	for _, r := range runs {
		dry := ""
		if r.DryRun {
			dry = "yes"
		}
		fmt.Printf("%-6d %-20s %-8d %-8d %-8d %-8s %-40s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.EntryCount,
			r.BrandCount,
			r.RemovedCount,
			dry,
			r.Source,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	return nil
}
