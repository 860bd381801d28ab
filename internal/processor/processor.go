package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/podsnap/internal/model"
	"github.com/nguyentantai21042004/podsnap/internal/speech"
)

func (p *implProcessor) Submit(ctx context.Context, in model.Input) (<-chan error, error) {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil, model.ErrBusy
	}
	previous, previousDir := p.session.Artifacts(), p.dir
	p.session = model.NewSession()
	p.dir = ""
	p.running = true
	p.idle = make(chan struct{})
	p.mu.Unlock()

	// A new submission supersedes whatever the last run left behind.
	p.removeAll(ctx, previous, previousDir)

	dir, err := os.MkdirTemp(p.cfg.Paths.Temp, "session-*")
	if err != nil {
		err = model.StorageError("create session directory", err)
		p.finish(ctx, err)
		return nil, err
	}

	p.mu.Lock()
	p.dir = dir
	if !in.IsUpload() {
		p.session.Stage = model.StageExtracting
	}
	p.mu.Unlock()

	if in.IsUpload() {
		audio, err := p.deps.Resolver.FromUpload(ctx, dir, *in.Upload)
		if err != nil {
			p.finish(ctx, err)
			return nil, err
		}
		p.update(func(s *model.Session) {
			s.SourceAudioPath = audio.Path
			s.Title = audio.Title
			s.Stage = model.StageTranscribing
		})
	}

	done := make(chan error, 1)
	go func() {
		err := p.run(ctx, in)
		p.finish(ctx, err)
		done <- err
		close(done)
	}()

	return done, nil
}

func (p *implProcessor) Process(ctx context.Context, in model.Input) error {
	done, err := p.Submit(ctx, in)
	if err != nil {
		return err
	}
	return <-done
}

func (p *implProcessor) Wait(ctx context.Context) error {
	p.mu.Lock()
	idle := p.idle
	p.mu.Unlock()
	if idle == nil {
		return nil
	}

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *implProcessor) Reset(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return model.ErrBusy
	}
	artifacts, dir := p.session.Artifacts(), p.dir
	p.session = model.NewSession()
	p.dir = ""
	p.mu.Unlock()

	p.logger.Info(ctx, "Resetting session (%d artifacts)", len(artifacts))
	p.removeAll(ctx, artifacts, dir)
	return nil
}

func (p *implProcessor) Snapshot() model.Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session.Clone()
}

func (p *implProcessor) Busy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// run executes the background steps. Each step gets its own deadline.
func (p *implProcessor) run(ctx context.Context, in model.Input) error {
	startTime := time.Now()
	s := p.Snapshot()
	dir := p.sessionDir()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting podcast processing")
	p.logger.Info(ctx, "========================================")

	// Step 1: Extract audio (URL input only)
	if !in.IsUpload() {
		stepCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeouts.Extract)
		audio, err := p.deps.Resolver.FromURL(stepCtx, dir, in.URL)
		cancel()
		if err != nil {
			return stepError(model.StageExtracting, err)
		}
		p.update(func(s *model.Session) {
			s.SourceAudioPath = audio.Path
			s.Title = audio.Title
			s.Stage = model.StageTranscribing
		})
		s = p.Snapshot()
	}

	// Step 2: Transcribe
	stepCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeouts.Transcribe)
	transcript, err := p.deps.Transcriber.Transcribe(stepCtx, s.SourceAudioPath)
	cancel()
	if err != nil {
		return stepError(model.StageTranscribing, err)
	}
	p.update(func(s *model.Session) {
		s.Transcript = transcript
		s.Stage = model.StageSummarizing
	})

	// Step 3: Summarize
	stepCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeouts.Summarize)
	summary, err := p.deps.Summarizer.Summarize(stepCtx, transcript)
	cancel()
	if err != nil {
		return stepError(model.StageSummarizing, err)
	}
	p.update(func(s *model.Session) {
		s.Summary = summary
		s.Stage = model.StageSynthesizing
	})

	// Step 4: Pick a voice and synthesize
	mood := model.MoodNeutral
	if p.deps.Classifier != nil {
		stepCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeouts.Classify)
		mood = p.deps.Classifier.Classify(stepCtx, summary)
		cancel()
	}
	p.update(func(s *model.Session) {
		s.Mood = mood
	})

	stepCtx, cancel = context.WithTimeout(ctx, p.cfg.Timeouts.Synthesize)
	audioPath, err := p.deps.Synthesizer.Synthesize(stepCtx, speech.Request{
		Summary: summary,
		Mood:    mood,
		Title:   s.Title,
		Dir:     dir,
	})
	cancel()
	if err != nil {
		return stepError(model.StageSynthesizing, err)
	}
	p.update(func(s *model.Session) {
		s.SummaryAudioPath = audioPath
		s.Stage = model.StageReady
	})

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Title: %s", s.Title)
	p.logger.Info(ctx, "Mood: %s", mood)
	p.logger.Info(ctx, "Summary audio: %s", audioPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}

// finish releases the session after a run. On failure every owned artifact is
// deleted and the session drops back to idle with the error recorded.
func (p *implProcessor) finish(ctx context.Context, runErr error) {
	if runErr == nil {
		p.mu.Lock()
		p.release()
		p.mu.Unlock()
		return
	}

	p.mu.Lock()
	stage := p.session.Stage
	artifacts, dir := p.session.Artifacts(), p.dir
	p.mu.Unlock()

	p.logger.Error(ctx, "Processing failed while %s: %v", stage, runErr)
	warnings := p.removeAll(ctx, artifacts, dir)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = model.NewSession()
	p.session.Errors = []error{runErr}
	p.session.Warnings = warnings
	p.dir = ""
	p.release()
}

// release marks the run over. Callers hold p.mu.
func (p *implProcessor) release() {
	p.running = false
	close(p.idle)
}

func (p *implProcessor) update(fn func(s *model.Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(&p.session)
}

func (p *implProcessor) sessionDir() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dir
}

// stepError makes sure a step failure carries the kind of the step it came from.
func stepError(stage model.Stage, err error) error {
	var pe *model.PipelineError
	if errors.As(err, &pe) {
		return err
	}
	op := fmt.Sprintf("%s step", stage)
	switch stage {
	case model.StageExtracting:
		return model.ExtractionError(op, err)
	case model.StageTranscribing:
		return model.TranscriptionError(op, err)
	case model.StageSummarizing:
		return model.SummarizationError(op, err)
	default:
		return model.SynthesisError(op, err)
	}
}
