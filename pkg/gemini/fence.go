package gemini

import "strings"

// UnwrapFence removes one markdown code fence wrapping s, tolerating an
// optional language tag on the opening line (typically "json"), and trims
// surrounding whitespace. Text without a fence is returned trimmed, so
// applying UnwrapFence twice is a no-op.
func UnwrapFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}

	t = strings.TrimPrefix(t, "```")
	if i := strings.Index(t, "\n"); i >= 0 {
		// Drop the rest of the opening fence line (the language tag).
		t = t[i+1:]
	} else {
		// Single-line fence.
		t = strings.TrimPrefix(t, "json")
	}

	t = strings.TrimSpace(t)
	t = strings.TrimSuffix(t, "```")

	return strings.TrimSpace(t)
}
