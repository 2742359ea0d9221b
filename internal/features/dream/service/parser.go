package service

import "strings"

// Fallback values used whenever the title/emotion extraction yields nothing
// usable. The lineage is Turkish-facing: "subconscious message" / "neutral".
const (
	FallbackTitle   = "Bilinçaltı Mesajı"
	FallbackEmotion = "Nötr"
)

// ParseTitleEmotion extracts (title, emotion) from the model's free-text
// "Title | Emotion" reply. It never fails: anything unparseable resolves to
// the fallback values.
func ParseTitleEmotion(raw string) (string, string) {
	title := FallbackTitle
	emotion := FallbackEmotion

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return title, emotion
	}

	if !strings.Contains(trimmed, "|") {
		return trimmed, emotion
	}

	parts := strings.SplitN(trimmed, "|", 3)
	if t := cleanTitle(parts[0]); t != "" {
		title = t
	}
	if len(parts) >= 2 {
		if e := cleanEmotion(parts[1]); e != "" {
			emotion = e
		}
	}

	return title, emotion
}

// cleanTitle strips whitespace and enclosing quote characters.
func cleanTitle(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'“”‘’`)
	return strings.TrimSpace(s)
}

// cleanEmotion strips whitespace and trailing periods.
func cleanEmotion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".")
	return strings.TrimSpace(s)
}
