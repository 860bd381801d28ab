package model

import "testing"

func TestParseMood(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Mood
	}{
		{"joyful", "joyful", MoodJoyful},
		{"serious uppercase", "SERIOUS", MoodSerious},
		{"neutral padded", "  Neutral \n", MoodNeutral},
		{"quoted", "'joyful'", MoodJoyful},
		{"trailing period", "serious.", MoodSerious},
		{"empty", "", MoodNeutral},
		{"multi word", "joyful and upbeat", MoodNeutral},
		{"sentence", "The tone is serious", MoodNeutral},
		{"unknown label", "angry", MoodNeutral},
		{"json", `{"mood":"joyful"}`, MoodNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMood(tt.raw); got != tt.want {
				t.Errorf("ParseMood(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
