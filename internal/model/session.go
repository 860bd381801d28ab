package model

// Session is one user's end-to-end request, from input submission to result or
// reset. Only the processor mutates it; everyone else reads snapshots.
type Session struct {
	SourceAudioPath  string
	Title            string
	Stage            Stage
	Transcript       string
	Summary          string
	Mood             Mood
	SummaryAudioPath string
	Errors           []error
	Warnings         []error
}

// NewSession returns an idle session with nothing submitted.
func NewSession() Session {
	return Session{Stage: StageIdle}
}

// Clone returns a copy that shares no slices with s.
func (s Session) Clone() Session {
	c := s
	if s.Errors != nil {
		c.Errors = append([]error(nil), s.Errors...)
	}
	if s.Warnings != nil {
		c.Warnings = append([]error(nil), s.Warnings...)
	}
	return c
}

// Artifacts lists the temp files the session currently owns.
func (s Session) Artifacts() []string {
	var paths []string
	if s.SourceAudioPath != "" {
		paths = append(paths, s.SourceAudioPath)
	}
	if s.SummaryAudioPath != "" {
		paths = append(paths, s.SummaryAudioPath)
	}
	return paths
}
