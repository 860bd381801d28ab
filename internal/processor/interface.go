package processor

import (
	"context"

	"github.com/nguyentantai21042004/podsnap/internal/model"
)

// Processor owns one session and runs the podcast pipeline over it:
// extract, transcribe, summarize, synthesize.
type Processor interface {
	// Submit claims the session and starts a run. The upload, if any, is stored
	// before Submit returns; the remaining steps run in the background and the
	// channel yields the run's terminal error (nil when the session is Ready).
	// Submit returns model.ErrBusy while a run is in progress. ctx bounds the
	// whole run, not just the call.
	Submit(ctx context.Context, in model.Input) (<-chan error, error)
	// Process submits and waits for the run to finish.
	Process(ctx context.Context, in model.Input) error
	// Wait blocks until no run is in progress or ctx is done.
	Wait(ctx context.Context) error
	// Reset deletes every artifact the session owns and returns it to a fresh
	// idle state. It returns model.ErrBusy while a run is in progress.
	Reset(ctx context.Context) error
	// Snapshot returns a copy of the session for display.
	Snapshot() model.Session
	// Busy reports whether a run is in progress.
	Busy() bool
}
