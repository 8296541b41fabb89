// Package keycmd implements credential maintenance commands.
package keycmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/pagetools/brandsweep/internal/common"
	"github.com/pagetools/brandsweep/pkg/credstore"
)

func KeySetAction(c *cli.Context) error {
	key := strings.TrimSpace(c.Args().First())
	if key == "" {
		return fmt.Errorf("usage: brandsweep key set <api-key>")
	}

	store, err := credstore.Open()
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer store.Close()

	stored, err := store.Set(credstore.APIKeyName, key)
	if err != nil {
		return err
	}

	fmt.Printf("Stored %s (%s)\n", credstore.APIKeyName, common.MaskSecret(stored))
	return nil
}

func KeyShowAction(c *cli.Context) error {
	store, err := credstore.Open()
	if err != nil {
		return fmt.Errorf("failed to open credential store: %w", err)
	}
	defer store.Close()

	key, found, err := store.Get(credstore.APIKeyName)
	if err != nil {
		return err
	}
	if !found {
		fmt.Println("No API key stored. Run 'brandsweep key set <api-key>'")
		return nil
	}

	if c.Bool("reveal") {
		fmt.Println(key)
	} else {
		fmt.Println(common.MaskSecret(key))
	}
	return nil
}
