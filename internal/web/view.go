package web

import (
	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/speech"
)

// Message is one error or warning as shown to the user.
type Message struct {
	Headline string `json:"headline"`
	Detail   string `json:"detail"`
}

// Status is the JSON and template view of a session.
type Status struct {
	Stage        model.Stage `json:"stage"`
	Label        string      `json:"label"`
	Step         int         `json:"step"`
	Busy         bool        `json:"busy"`
	Title        string      `json:"title,omitempty"`
	Transcript   string      `json:"transcript,omitempty"`
	Summary      string      `json:"summary,omitempty"`
	Mood         model.Mood  `json:"mood,omitempty"`
	Ready        bool        `json:"ready"`
	DownloadName string      `json:"download_name,omitempty"`
	Errors       []Message   `json:"errors"`
	Warnings     []Message   `json:"warnings"`
}

func newStatus(s model.Session, busy bool) Status {
	st := Status{
		Stage:      s.Stage,
		Label:      s.Stage.Label(),
		Step:       s.Stage.Step(),
		Busy:       busy,
		Title:      s.Title,
		Transcript: s.Transcript,
		Summary:    s.Summary,
		Mood:       s.Mood,
		Ready:      s.Stage == model.StageReady && s.SummaryAudioPath != "",
		Errors:     messages(s.Errors),
		Warnings:   messages(s.Warnings),
	}
	if st.Ready {
		st.DownloadName = speech.DownloadName(s.Title)
	}
	return st
}

func messages(errs []error) []Message {
	out := make([]Message, 0, len(errs))
	for _, err := range errs {
		headline, detail := model.Describe(err)
		out = append(out, Message{Headline: headline, Detail: detail})
	}
	return out
}
