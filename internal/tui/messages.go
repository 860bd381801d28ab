package tui

// pollMsg asks the model to refresh its session snapshot.
type pollMsg struct{}

// DoneMsg carries the terminal result of the run.
type DoneMsg struct {
	Err error
}

// ExportedMsg reports where the finished summary was written.
type ExportedMsg struct {
	Paths []string
	Err   error
}
