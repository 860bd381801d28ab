package model

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	KindStorage       ErrorKind = "storage"
	KindExtraction    ErrorKind = "extraction"
	KindTranscription ErrorKind = "transcription"
	KindSummarization ErrorKind = "summarization"
	KindSynthesis     ErrorKind = "synthesis"
	KindCleanup       ErrorKind = "cleanup"
)

// Sentinels for errors.Is. They carry no cause.
var (
	ErrStorage       = &PipelineError{Kind: KindStorage}
	ErrExtraction    = &PipelineError{Kind: KindExtraction}
	ErrTranscription = &PipelineError{Kind: KindTranscription}
	ErrSummarization = &PipelineError{Kind: KindSummarization}
	ErrSynthesis     = &PipelineError{Kind: KindSynthesis}
	ErrCleanup       = &PipelineError{Kind: KindCleanup}
)

// ErrBusy is returned when a session is asked to start or reset while a step runs.
var ErrBusy = errors.New("a podcast is already being processed")

// PipelineError is a classified failure of one pipeline operation.
type PipelineError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *PipelineError) Error() string {
	switch {
	case e.Op == "" && e.Err == nil:
		return string(e.Kind) + " error"
	case e.Err == nil:
		return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	case e.Op == "":
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	}
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Is matches sentinels by kind.
func (e *PipelineError) Is(target error) bool {
	t, ok := target.(*PipelineError)
	if !ok {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// UserMessage is the headline shown above the diagnostic detail.
func (e *PipelineError) UserMessage() string {
	switch e.Kind {
	case KindStorage:
		return "Could not store the uploaded audio."
	case KindExtraction:
		return "Audio extraction failed."
	case KindTranscription:
		return "Transcription failed."
	case KindSummarization:
		return "Summarization failed."
	case KindSynthesis:
		return "Error converting summary to audio."
	case KindCleanup:
		return "A temporary file could not be removed."
	default:
		return "An error occurred."
	}
}

func newError(kind ErrorKind, op string, err error) error {
	return &PipelineError{Kind: kind, Op: op, Err: err}
}

func StorageError(op string, err error) error       { return newError(KindStorage, op, err) }
func ExtractionError(op string, err error) error    { return newError(KindExtraction, op, err) }
func TranscriptionError(op string, err error) error { return newError(KindTranscription, op, err) }
func SummarizationError(op string, err error) error { return newError(KindSummarization, op, err) }
func SynthesisError(op string, err error) error     { return newError(KindSynthesis, op, err) }
func CleanupWarning(op string, err error) error     { return newError(KindCleanup, op, err) }

// Describe splits err into a headline and a detail line for display.
func Describe(err error) (headline, detail string) {
	if err == nil {
		return "", ""
	}
	var pe *PipelineError
	if errors.As(err, &pe) {
		return pe.UserMessage(), err.Error()
	}
	return "An error occurred.", err.Error()
}
