package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/podsnap/internal/logger"
	"github.com/nguyentantai21042004/podsnap/internal/processor"
)

const sessionCookie = "podsnap_session"

type entry struct {
	proc     processor.Processor
	lastSeen time.Time
}

// Registry maps browser sessions to their processors. Sessions idle longer
// than the TTL are reset and forgotten by Sweep.
type Registry struct {
	mu           sync.Mutex
	sessions     map[string]*entry
	newProcessor func() processor.Processor
	ttl          time.Duration
	now          func() time.Time
	logger       logger.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(newProcessor func() processor.Processor, ttl time.Duration, log logger.Logger) *Registry {
	return &Registry{
		sessions:     make(map[string]*entry),
		newProcessor: newProcessor,
		ttl:          ttl,
		now:          time.Now,
		logger:       log,
	}
}

// Lookup returns the processor for the request's session cookie, creating a
// session and setting the cookie when there is none.
func (reg *Registry) Lookup(w http.ResponseWriter, r *http.Request) processor.Processor {
	id := ""
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	e, ok := reg.sessions[id]
	if !ok {
		id = uuid.NewString()
		e = &entry{proc: reg.newProcessor()}
		reg.sessions[id] = e
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		reg.logger.Debug(r.Context(), "New browser session %s", id)
	}
	e.lastSeen = reg.now()
	return e.proc
}

// Len reports the number of live sessions.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.sessions)
}

// Sweep resets and drops abandoned sessions. Sessions with a run in progress
// are kept until the run ends.
func (reg *Registry) Sweep(ctx context.Context) int {
	cutoff := reg.now().Add(-reg.ttl)

	reg.mu.Lock()
	var stale []processor.Processor
	for id, e := range reg.sessions {
		if e.lastSeen.After(cutoff) || e.proc.Busy() {
			continue
		}
		delete(reg.sessions, id)
		stale = append(stale, e.proc)
	}
	reg.mu.Unlock()

	for _, p := range stale {
		if err := p.Reset(ctx); err != nil {
			reg.logger.Warn(ctx, "Failed to reset abandoned session: %v", err)
		}
	}
	if len(stale) > 0 {
		reg.logger.Info(ctx, "Dropped %d abandoned sessions", len(stale))
	}
	return len(stale)
}

// Run sweeps every interval until ctx is cancelled.
func (reg *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.Sweep(ctx)
		}
	}
}

// Close waits for every session's run to end, then resets and drops it. Cancel
// the runs' context first; Close gives up on a run when ctx is done.
func (reg *Registry) Close(ctx context.Context) {
	reg.mu.Lock()
	all := make([]processor.Processor, 0, len(reg.sessions))
	for id, e := range reg.sessions {
		all = append(all, e.proc)
		delete(reg.sessions, id)
	}
	reg.mu.Unlock()

	for _, p := range all {
		if err := p.Wait(ctx); err != nil {
			reg.logger.Warn(ctx, "Session still running at shutdown: %v", err)
			continue
		}
		if err := p.Reset(ctx); err != nil {
			reg.logger.Warn(ctx, "Failed to reset session at shutdown: %v", err)
		}
	}
}
