package speech

import "github.com/nguyentantai21042004/podsnap/internal/model"

// Voice is a TTS voice and the speaking style used with it.
type Voice struct {
	Name  string
	Style string
}

var voices = map[model.Mood]Voice{
	model.MoodJoyful:  {Name: "shimmer", Style: "cheerful"},
	model.MoodSerious: {Name: "onyx", Style: "serious"},
	model.MoodNeutral: {Name: "nova", Style: "neutral"},
}

// VoiceFor maps a mood to its voice. Unknown moods get the neutral voice.
func VoiceFor(m model.Mood) Voice {
	if v, ok := voices[m]; ok {
		return v
	}
	return voices[model.MoodNeutral]
}
