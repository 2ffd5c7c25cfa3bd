// Package events provides the process-wide publish/subscribe channel between
// chain evaluation and reporting. Dispatch is synchronous: Emit calls every
// registered handler in registration order, on the caller's goroutine, before
// returning.
package events

import (
	"sync"

	"github.com/verityhq/verity/assert"
)

// Handler receives an evaluated chain snapshot.
type Handler func(assert.Snapshot)

// Bus is a multi-subscriber event bus for assertion outcomes. The handler
// lists are protected by a mutex; handlers themselves run outside the lock so
// a handler may subscribe or emit without deadlocking.
type Bus struct {
	mu        sync.Mutex
	success   []Handler
	failure   []Handler
	completed []func()
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Default is the process-wide bus used by the root package's Expect wiring.
var Default = NewBus()

// OnSuccess registers a handler for passing chains.
func (b *Bus) OnSuccess(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.success = append(b.success, h)
}

// OnFailure registers a handler for failing chains.
func (b *Bus) OnFailure(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failure = append(b.failure, h)
}

// OnSessionCompleted registers a handler invoked when a session is
// summarized.
func (b *Bus) OnSessionCompleted(h func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.completed = append(b.completed, h)
}

// EmitSuccess dispatches a passing chain to all success handlers.
func (b *Bus) EmitSuccess(s assert.Snapshot) {
	for _, h := range b.successHandlers() {
		h(s)
	}
}

// EmitFailure dispatches a failing chain to all failure handlers.
func (b *Bus) EmitFailure(s assert.Snapshot) {
	for _, h := range b.failureHandlers() {
		h(s)
	}
}

// EmitSessionCompleted dispatches the session boundary to all handlers.
func (b *Bus) EmitSessionCompleted() {
	b.mu.Lock()
	handlers := make([]func(), len(b.completed))
	copy(handlers, b.completed)
	b.mu.Unlock()

	for _, h := range handlers {
		h()
	}
}

func (b *Bus) successHandlers() []Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	handlers := make([]Handler, len(b.success))
	copy(handlers, b.success)
	return handlers
}

func (b *Bus) failureHandlers() []Handler {
	b.mu.Lock()
	defer b.mu.Unlock()
	handlers := make([]Handler, len(b.failure))
	copy(handlers, b.failure)
	return handlers
}
