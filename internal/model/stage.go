package model

// Stage is the position of a session in the summarization pipeline.
type Stage string

const (
	StageIdle         Stage = "idle"
	StageExtracting   Stage = "extracting"
	StageTranscribing Stage = "transcribing"
	StageSummarizing  Stage = "summarizing"
	StageSynthesizing Stage = "synthesizing"
	StageReady        Stage = "ready"
)

// Running reports whether a pipeline step is in progress.
func (s Stage) Running() bool {
	switch s {
	case StageExtracting, StageTranscribing, StageSummarizing, StageSynthesizing:
		return true
	default:
		return false
	}
}

// Label is the progress text shown to the user.
func (s Stage) Label() string {
	switch s {
	case StageExtracting:
		return "Extracting audio..."
	case StageTranscribing:
		return "Transcribing audio..."
	case StageSummarizing:
		return "Summarizing transcript..."
	case StageSynthesizing:
		return "Converting summary to audio..."
	case StageReady:
		return "Summary generated!"
	default:
		return "Waiting for a podcast"
	}
}

// Step is the 1-based index of a running stage, 0 otherwise.
func (s Stage) Step() int {
	switch s {
	case StageExtracting:
		return 1
	case StageTranscribing:
		return 2
	case StageSummarizing:
		return 3
	case StageSynthesizing:
		return 4
	case StageReady:
		return 5
	default:
		return 0
	}
}
