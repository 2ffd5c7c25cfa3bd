package fixture

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// trace records lifecycle events in execution order.
type trace struct {
	mu     sync.Mutex
	events []string
}

func (t *trace) add(event string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func (t *trace) list() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.events))
	copy(out, t.events)
	return out
}

func TestRunWithFixtures_Order(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterBeforeAll("db", func() { tr.add("before-all") })
	o.RegisterSetup("db", func() { tr.add("setup-1") })
	o.RegisterSetup("db", func() { tr.add("setup-2") })
	o.RegisterTeardown("db", func() { tr.add("teardown-1") })
	o.RegisterTeardown("db", func() { tr.add("teardown-2") })

	o.RunWithFixtures("db", func() { tr.add("body") })

	assert.Equal(t,
		[]string{"before-all", "setup-1", "setup-2", "body", "teardown-1", "teardown-2"},
		tr.list())
}

func TestRunWithFixtures_BeforeAllOncePerScope(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterBeforeAll("db", func() { tr.add("before-all") })

	for i := 0; i < 3; i++ {
		o.RunWithFixtures("db", func() { tr.add("body") })
	}

	assert.Equal(t, []string{"before-all", "body", "body", "body"}, tr.list())
}

func TestRunWithFixtures_ScopesAreIndependent(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterSetup("db", func() { tr.add("db-setup") })
	o.RegisterSetup("http", func() { tr.add("http-setup") })

	o.RunWithFixtures("http", func() { tr.add("http-body") })

	assert.Equal(t, []string{"http-setup", "http-body"}, tr.list())
}

func TestRunWithFixtures_TeardownRunsOnBodyPanic(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterTeardown("db", func() { tr.add("teardown") })

	require.PanicsWithValue(t, "boom", func() {
		o.RunWithFixtures("db", func() { panic("boom") })
	})
	assert.Equal(t, []string{"teardown"}, tr.list())
}

func TestRunWithFixtures_BodyPanicWinsOverTeardownPanic(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterTeardown("db", func() { tr.add("teardown-1"); panic("cleanup failed") })
	o.RegisterTeardown("db", func() { tr.add("teardown-2") })

	require.PanicsWithValue(t, "boom", func() {
		o.RunWithFixtures("db", func() { panic("boom") })
	})
	assert.Equal(t, []string{"teardown-1", "teardown-2"}, tr.list(),
		"a panicking teardown must not stop later teardowns")
}

func TestRunWithFixtures_TeardownPanicLoggedWhenBodyFailed(t *testing.T) {
	o := NewOrchestrator()

	var logBuf bytes.Buffer
	o.SetLogger(slog.New(slog.NewTextHandler(&logBuf, nil)))

	o.RegisterTeardown("db", func() { panic("cleanup failed") })

	require.PanicsWithValue(t, "boom", func() {
		o.RunWithFixtures("db", func() { panic("boom") })
	})
	assert.Contains(t, logBuf.String(), "teardown panicked during failure cleanup")
	assert.Contains(t, logBuf.String(), "cleanup failed")
}

func TestCallbackError_Message(t *testing.T) {
	err := &CallbackError{Scope: "db", Phase: "teardown", Value: "boom"}
	assert.Contains(t, err.Error(), `teardown callback panicked in scope "db": boom`)
}

func TestRunWithFixtures_TeardownPanicPropagatesWhenBodyPassed(t *testing.T) {
	o := NewOrchestrator()

	o.RegisterTeardown("db", func() { panic("cleanup failed") })

	assert.PanicsWithValue(t, "cleanup failed", func() {
		o.RunWithFixtures("db", func() {})
	})
}

func TestRunWithFixtures_NoFixturesIsPlainCall(t *testing.T) {
	o := NewOrchestrator()
	ran := false

	o.RunWithFixtures("empty", func() { ran = true })

	assert.True(t, ran)
}

func TestRunAfterAllFixtures_OncePerExecutedScope(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterAfterAll("db", func() { tr.add("after-db") })
	o.RegisterAfterAll("http", func() { tr.add("after-http") })
	o.RegisterAfterAll("unused", func() { tr.add("after-unused") })

	o.RunWithFixtures("db", func() {})
	o.RunWithFixtures("http", func() {})
	o.RunWithFixtures("db", func() {})

	o.RunAfterAllFixtures()
	o.RunAfterAllFixtures()

	assert.Equal(t, []string{"after-db", "after-http"}, tr.list(),
		"after-all runs once per executed scope, in first-execution order")
}

func TestRunAfterAllFixtures_PanicDoesNotStopSweep(t *testing.T) {
	o := NewOrchestrator()
	tr := &trace{}

	o.RegisterAfterAll("a", func() { panic("boom") })
	o.RegisterAfterAll("b", func() { tr.add("after-b") })

	o.RunWithFixtures("a", func() {})
	o.RunWithFixtures("b", func() {})

	assert.NotPanics(t, func() { o.RunAfterAllFixtures() })
	assert.Equal(t, []string{"after-b"}, tr.list())
}

func TestRunWithFixtures_ConcurrentSameScope(t *testing.T) {
	defer goleak.VerifyNone(t)

	o := NewOrchestrator()

	var beforeAll int
	var mu sync.Mutex
	o.RegisterBeforeAll("db", func() {
		mu.Lock()
		beforeAll++
		mu.Unlock()
	})

	var bodies int
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o.RunWithFixtures("db", func() {
				mu.Lock()
				bodies++
				mu.Unlock()
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, beforeAll, "before-all must run exactly once under concurrency")
	assert.Equal(t, 16, bodies)
}

func TestDefaultOrchestratorWrappers(t *testing.T) {
	// The default orchestrator is process-wide; use a unique scope so other
	// tests cannot interfere.
	tr := &trace{}
	RegisterBeforeAll("wrappers-scope", func() { tr.add("before-all") })
	RegisterSetup("wrappers-scope", func() { tr.add("setup") })
	RegisterTeardown("wrappers-scope", func() { tr.add("teardown") })
	RegisterAfterAll("wrappers-scope", func() { tr.add("after-all") })

	RunWithFixtures("wrappers-scope", func() { tr.add("body") })
	RunAfterAllFixtures()

	assert.Equal(t,
		[]string{"before-all", "setup", "body", "teardown", "after-all"},
		tr.list())
}
