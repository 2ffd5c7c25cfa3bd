// Package verity is a fluent assertion library with a session reporter and
// per-scope test fixtures.
//
// A chain starts with Expect, accumulates checks through That, Not, And, and
// Or, and evaluates exactly once when its deferred Close runs:
//
//	c := verity.Expect(n, "n")
//	defer c.Close()
//	c.That(match.Positive[int]()).And().That(match.Even[int]())
//
// Outcomes flow through the default event bus into the process-wide reporter;
// Summarize renders the session aggregate and resets it.
package verity

import (
	"sync"

	"github.com/verityhq/verity/assert"
	"github.com/verityhq/verity/config"
	"github.com/verityhq/verity/console"
	"github.com/verityhq/verity/events"
	"github.com/verityhq/verity/fixture"
	"github.com/verityhq/verity/report"
)

var (
	initOnce sync.Once
	reporter *report.Reporter
	enhanced bool
)

// Init wires the process-wide pipeline: a renderer built from cfg, a reporter
// subscribed to the default event bus. Only the first call takes effect;
// later calls return the established reporter.
func Init(cfg config.Config, opts ...report.Option) *report.Reporter {
	return initPipeline(cfg, console.New(cfg), opts...)
}

// InitWithRenderer is Init with a caller-supplied renderer, for embedders and
// tests that need to redirect output.
func InitWithRenderer(renderer *console.Renderer, opts ...report.Option) *report.Reporter {
	return initPipeline(config.Default(), renderer, opts...)
}

func initPipeline(cfg config.Config, renderer *console.Renderer, opts ...report.Option) *report.Reporter {
	initOnce.Do(func() {
		enhanced = cfg.EnhancedOutput
		reporter = report.New(renderer, opts...)
		reporter.Subscribe(events.Default)
	})
	return reporter
}

// Reporter returns the process-wide reporter, initializing the pipeline with
// default configuration on first use.
func Reporter() *report.Reporter {
	return Init(config.Default())
}

// Expect starts an assertion chain over value. The label names the value in
// rendered messages; pass the variable name. Defer Close on the returned
// chain so it evaluates at scope exit.
func Expect[V any](value V, label string) *assert.Chain[V] {
	Reporter()
	return assert.NewChain(value, label, events.Default).WithDiagnostics(enhanced)
}

// Summarize flushes after-all fixtures, renders the session aggregate, and
// resets the session.
func Summarize() report.SessionResult {
	fixture.RunAfterAllFixtures()
	return Reporter().Summarize()
}

// RegisterSetup registers a per-body setup for the scope.
func RegisterSetup(scope string, cb fixture.Callback) { fixture.RegisterSetup(scope, cb) }

// RegisterTeardown registers a per-body teardown for the scope.
func RegisterTeardown(scope string, cb fixture.Callback) { fixture.RegisterTeardown(scope, cb) }

// RegisterBeforeAll registers a once-per-scope setup.
func RegisterBeforeAll(scope string, cb fixture.Callback) { fixture.RegisterBeforeAll(scope, cb) }

// RegisterAfterAll registers a session-end callback for the scope.
func RegisterAfterAll(scope string, cb fixture.Callback) { fixture.RegisterAfterAll(scope, cb) }

// RunWithFixtures runs body inside the scope's fixture lifecycle.
func RunWithFixtures(scope string, body func()) { fixture.RunWithFixtures(scope, body) }
