// Package report aggregates assertion outcomes into a session result.
//
// The Reporter subscribes to an events.Bus and maintains pass/fail counters,
// the ordered list of failures, and a deduplication set keyed by the
// structural chain signature. Deduplication and silent mode affect only what
// gets rendered, never what gets counted or captured.
package report

import (
	"io"
	"log/slog"
	"sync"

	"github.com/verityhq/verity/assert"
	"github.com/verityhq/verity/console"
	"github.com/verityhq/verity/events"
	"github.com/verityhq/verity/internal/canon"
)

// SessionResult is the aggregate of one test session.
type SessionResult struct {
	PassedCount uint64
	FailedCount uint64
	// Failures holds every failed chain in arrival order, regardless of
	// deduplication.
	Failures []assert.Snapshot
}

// SessionSink receives the finished session when Summarize runs. The history
// package provides a SQLite-backed implementation.
type SessionSink interface {
	RecordSession(SessionResult) error
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSink attaches a session sink. Sink errors are logged, never fatal:
// archiving is best-effort and must not fail a test run.
func WithSink(sink SessionSink) Option {
	return func(r *Reporter) { r.sink = sink }
}

// WithLogger replaces the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reporter) { r.logger = logger }
}

// Reporter accumulates one session's results. All mutable state is guarded by
// a single mutex; rendering happens outside the lock.
type Reporter struct {
	mu      sync.Mutex
	session SessionResult
	seen    map[string]struct{}
	dedup   bool
	silent  bool

	renderer *console.Renderer
	bus      *events.Bus
	sink     SessionSink
	logger   *slog.Logger
}

// New creates a reporter rendering through the given renderer.
// Deduplication starts enabled, silent mode disabled.
func New(renderer *console.Renderer, opts ...Option) *Reporter {
	r := &Reporter{
		renderer: renderer,
		seen:     make(map[string]struct{}),
		dedup:    true,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe registers the reporter's handlers on the bus. The bus is
// remembered so Summarize can emit the session-completed event.
func (r *Reporter) Subscribe(bus *events.Bus) {
	r.mu.Lock()
	r.bus = bus
	r.mu.Unlock()

	bus.OnSuccess(r.HandleSuccess)
	bus.OnFailure(r.HandleFailure)
}

// HandleSuccess counts a passing chain and renders it unless silent mode or
// deduplication suppresses the output.
func (r *Reporter) HandleSuccess(snap assert.Snapshot) {
	r.mu.Lock()
	r.session.PassedCount++
	render := !r.silent && r.claimRender(snap)
	r.mu.Unlock()

	if render {
		r.renderer.PrintSuccess(snap)
	}
}

// HandleFailure counts a failing chain and always captures it; dedup and
// silent mode gate only the rendering.
func (r *Reporter) HandleFailure(snap assert.Snapshot) {
	r.mu.Lock()
	r.session.FailedCount++
	r.session.Failures = append(r.session.Failures, snap.Clone())
	render := !r.silent && r.claimRender(snap)
	r.mu.Unlock()

	if render {
		r.renderer.PrintFailure(snap)
	}
}

// claimRender reports whether the snapshot should be rendered, recording its
// signature when deduplication is on. Caller holds the mutex.
func (r *Reporter) claimRender(snap assert.Snapshot) bool {
	if !r.dedup {
		return true
	}
	key := canon.Signature(snap)
	if _, dup := r.seen[key]; dup {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Summarize renders the aggregate result, archives it through the sink,
// emits SessionCompleted, and resets the session: counters and failures are
// cleared, the dedup set is emptied, and deduplication returns to its default
// enabled state so one session's suppressions never leak into the next.
func (r *Reporter) Summarize() SessionResult {
	r.mu.Lock()
	session := r.sessionCopyLocked()
	r.session = SessionResult{}
	r.seen = make(map[string]struct{})
	r.dedup = true
	bus := r.bus
	r.mu.Unlock()

	r.renderer.PrintSessionSummary(session.PassedCount, session.FailedCount, session.Failures)

	if r.sink != nil {
		if err := r.sink.RecordSession(session); err != nil {
			r.logger.Error("failed to archive session", "error", err)
		}
	}

	if bus != nil {
		bus.EmitSessionCompleted()
	}

	return session
}

// Session returns a copy of the current (unsummarized) session state.
func (r *Reporter) Session() SessionResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessionCopyLocked()
}

func (r *Reporter) sessionCopyLocked() SessionResult {
	failures := make([]assert.Snapshot, len(r.session.Failures))
	copy(failures, r.session.Failures)
	return SessionResult{
		PassedCount: r.session.PassedCount,
		FailedCount: r.session.FailedCount,
		Failures:    failures,
	}
}

// EnableDeduplication turns duplicate suppression on.
func (r *Reporter) EnableDeduplication() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dedup = true
}

// DisableDeduplication renders every event, including repeats.
func (r *Reporter) DisableDeduplication() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dedup = false
}

// EnableSilentMode suppresses all per-chain rendering; counting and failure
// capture continue.
func (r *Reporter) EnableSilentMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.silent = true
}

// DisableSilentMode restores per-chain rendering.
func (r *Reporter) DisableSilentMode() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.silent = false
}

// ResetMessageCache clears the dedup set so identical chains render again,
// e.g. across test scopes within one session.
func (r *Reporter) ResetMessageCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = make(map[string]struct{})
}
