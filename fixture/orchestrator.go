// Package fixture runs per-scope test lifecycle callbacks: setup and teardown
// around every body, before-all once per scope, after-all once per executed
// scope at session end.
package fixture

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"
	"sync"
)

// CallbackError describes a fixture callback that panicked. It is logged
// rather than raised: where propagation is required, the original panic value
// travels unchanged.
type CallbackError struct {
	Scope string
	Phase string // "teardown" or "after-all"
	Value any
	Stack []byte
}

func (e *CallbackError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s callback panicked in scope %q: %v", e.Phase, e.Scope, e.Value)
	if len(e.Stack) > 0 {
		b.WriteByte('\n')
		b.Write(e.Stack)
	}
	return b.String()
}

// Callback is a lifecycle hook. Hooks take no arguments and signal failure by
// panicking, like the test bodies they wrap.
type Callback func()

// Orchestrator owns the fixture registries for a set of scopes. A scope is an
// arbitrary string key, typically the test function name.
//
// Registries may be mutated concurrently with runs; callbacks themselves are
// invoked outside the lock, on the caller's goroutine.
type Orchestrator struct {
	mu        sync.Mutex
	setups    map[string][]Callback
	teardowns map[string][]Callback
	beforeAll map[string][]Callback
	afterAll  map[string][]Callback

	// executed tracks scopes whose before-all has been claimed, in claim
	// order, so after-all runs exactly once per scope that actually ran.
	executed      map[string]struct{}
	executedOrder []string

	logger *slog.Logger
}

// NewOrchestrator creates an empty orchestrator. Logging defaults to discard.
func NewOrchestrator() *Orchestrator {
	return &Orchestrator{
		setups:    make(map[string][]Callback),
		teardowns: make(map[string][]Callback),
		beforeAll: make(map[string][]Callback),
		afterAll:  make(map[string][]Callback),
		executed:  make(map[string]struct{}),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger replaces the orchestrator's logger.
func (o *Orchestrator) SetLogger(logger *slog.Logger) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.logger = logger
}

// RegisterSetup adds a callback run before every body in the scope.
func (o *Orchestrator) RegisterSetup(scope string, cb Callback) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.setups[scope] = append(o.setups[scope], cb)
}

// RegisterTeardown adds a callback run after every body in the scope,
// including bodies that panic.
func (o *Orchestrator) RegisterTeardown(scope string, cb Callback) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.teardowns[scope] = append(o.teardowns[scope], cb)
}

// RegisterBeforeAll adds a callback run once before the scope's first body.
func (o *Orchestrator) RegisterBeforeAll(scope string, cb Callback) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.beforeAll[scope] = append(o.beforeAll[scope], cb)
}

// RegisterAfterAll adds a callback run once at session end, for scopes that
// executed at least one body.
func (o *Orchestrator) RegisterAfterAll(scope string, cb Callback) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.afterAll[scope] = append(o.afterAll[scope], cb)
}

// RunWithFixtures executes body inside the scope's lifecycle:
//
//	before-all (first run only) → setups → body → teardowns
//
// Teardowns run unconditionally. A panic from the body propagates after
// teardowns complete; a teardown panic is logged when the body already
// panicked, and propagates otherwise.
func (o *Orchestrator) RunWithFixtures(scope string, body func()) {
	o.mu.Lock()
	var before []Callback
	if _, claimed := o.executed[scope]; !claimed {
		// Claim before releasing the lock so concurrent runs of the same
		// scope cannot both see an unclaimed before-all.
		o.executed[scope] = struct{}{}
		o.executedOrder = append(o.executedOrder, scope)
		before = copyCallbacks(o.beforeAll[scope])
	}
	setups := copyCallbacks(o.setups[scope])
	teardowns := copyCallbacks(o.teardowns[scope])
	o.mu.Unlock()

	for _, cb := range before {
		cb()
	}
	for _, cb := range setups {
		cb()
	}

	bodyPanic := runCapturing(body)

	for _, cb := range teardowns {
		if teardownPanic := runCapturing(cb); teardownPanic != nil {
			if bodyPanic != nil {
				// The body's failure is the interesting one; do not let a
				// cascading teardown failure mask it.
				o.logf("teardown panicked during failure cleanup",
					"error", &CallbackError{
						Scope: scope,
						Phase: "teardown",
						Value: teardownPanic.value,
						Stack: teardownPanic.stack,
					})
				continue
			}
			bodyPanic = teardownPanic
		}
	}

	if bodyPanic != nil {
		panic(bodyPanic.value)
	}
}

// RunAfterAllFixtures runs after-all callbacks for every scope that executed,
// in first-execution order, then clears the executed set so a second call is
// a no-op. Panicking callbacks are logged and do not stop the sweep.
func (o *Orchestrator) RunAfterAllFixtures() {
	o.mu.Lock()
	scopes := o.executedOrder
	o.executedOrder = nil
	o.executed = make(map[string]struct{})

	batches := make([][]Callback, len(scopes))
	for i, scope := range scopes {
		batches[i] = copyCallbacks(o.afterAll[scope])
	}
	o.mu.Unlock()

	for i, scope := range scopes {
		for _, cb := range batches[i] {
			if p := runCapturing(cb); p != nil {
				o.logf("after-all fixture panicked",
					"error", &CallbackError{
						Scope: scope,
						Phase: "after-all",
						Value: p.value,
						Stack: p.stack,
					})
			}
		}
	}
}

func (o *Orchestrator) logf(msg string, args ...any) {
	o.mu.Lock()
	logger := o.logger
	o.mu.Unlock()
	logger.Error(msg, args...)
}

// capturedPanic carries a recovered value together with the stack at the
// point of capture.
type capturedPanic struct {
	value any
	stack []byte
}

func runCapturing(fn func()) (captured *capturedPanic) {
	defer func() {
		if r := recover(); r != nil {
			captured = &capturedPanic{value: r, stack: debug.Stack()}
		}
	}()
	fn()
	return nil
}

func copyCallbacks(cbs []Callback) []Callback {
	out := make([]Callback, len(cbs))
	copy(out, cbs)
	return out
}
