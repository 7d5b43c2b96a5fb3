package navigation

import (
	"regexp"
	"strings"
)

// Trigger phrases are tried in order; the earliest match in the transcript
// wins. Matching is case-insensitive because the transcript is lowercased
// before the search.
var triggerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:take me to|go to|navigate to|direction to|find|show me|where is)\s+(.+)`),
	regexp.MustCompile(`(?:how do i get to|how to reach|route to)\s+(.+)`),
	regexp.MustCompile(`(?:i want to go to|i need to go to)\s+(.+)`),
}

var trailingPunctuation = regexp.MustCompile(`[?.!,]+$`)

// ExtractDestination derives a destination phrase from a transcript.
// Command trigger phrases ("take me to", "navigate to", ...) are stripped and
// the remainder is used as the phrase. When no trigger phrase is present the
// whole transcript is returned, on the assumption that short commands are
// mostly destination text. Pure and deterministic; returns "" when no
// destination can be derived.
func ExtractDestination(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	lower := strings.ToLower(trimmed)
	for _, pattern := range triggerPatterns {
		if m := pattern.FindStringSubmatch(lower); m != nil {
			phrase := strings.TrimSpace(m[1])
			phrase = trailingPunctuation.ReplaceAllString(phrase, "")
			return strings.TrimSpace(phrase)
		}
	}

	return trimmed
}
