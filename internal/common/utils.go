package common

import (
	"encoding/json"
	"fmt"
	"os"
	"unicode/utf8"
)

// PrintJSON writes v to stdout as indented JSON.
func PrintJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(data))
	return nil
}

// Truncate shortens s for log output, cutting on a rune boundary so a
// multibyte character in a model payload is never split. Raw payloads can
// be large; logs only need enough of them to diagnose a bad response.
func Truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// MaskSecret renders a credential for display without revealing it.
func MaskSecret(s string) string {
	if len(s) <= 8 {
		return "********"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
