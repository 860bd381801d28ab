package model

import "strings"

// Mood is the coarse tone of a summary, used only to pick a synthesis voice.
type Mood string

const (
	MoodJoyful  Mood = "joyful"
	MoodSerious Mood = "serious"
	MoodNeutral Mood = "neutral"
)

// ParseMood normalizes a classifier reply. Anything that is not exactly one of
// the known labels, ignoring case, surrounding whitespace, quotes and a trailing
// period, becomes MoodNeutral.
func ParseMood(raw string) Mood {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.Trim(s, `"'`+"`")
	s = strings.TrimSuffix(s, ".")
	s = strings.TrimSpace(s)

	switch Mood(s) {
	case MoodJoyful, MoodSerious, MoodNeutral:
		return Mood(s)
	default:
		return MoodNeutral
	}
}
