package sweep

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/pagetools/brandsweep/pkg/credstore"
)

// ErrNoCredential means every credential source came up empty: no flag, no
// stored key, and the user declined (or could not be asked for) one.
var ErrNoCredential = errors.New("no API credential available")

// KeyStore is the slice of credstore the resolver needs; injected so tests
// can substitute an in-memory store.
type KeyStore interface {
	Get(name string) (string, bool, error)
	Set(name, value string) (string, error)
}

// PromptFunc captures a credential interactively. It returns an empty
// string when the user declines.
type PromptFunc func(label string) (string, error)

// resolveAPIKey resolves the credential in priority order: explicit flag
// value, stored key, interactive prompt. A key captured by prompt is
// persisted before use so later runs skip the prompt.
func resolveAPIKey(flagKey string, store KeyStore, prompt PromptFunc) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}

	key, found, err := store.Get(credstore.APIKeyName)
	if err != nil {
		return "", err
	}
	if found && key != "" {
		return key, nil
	}

	if prompt == nil {
		return "", ErrNoCredential
	}

	key, err = prompt("Gemini API key")
	if err != nil {
		return "", fmt.Errorf("credential prompt failed: %w", err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrNoCredential
	}

	if _, err := store.Set(credstore.APIKeyName, key); err != nil {
		return "", err
	}
	return key, nil
}

// terminalPrompt reads a secret from the controlling terminal without echo.
// Returns nil when stdin is not a terminal, which makes the resolver treat
// the credential as unobtainable rather than blocking a non-interactive run.
func terminalPrompt() PromptFunc {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil
	}
	return func(label string) (string, error) {
		fmt.Fprintf(os.Stderr, "%s: ", label)
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
}
