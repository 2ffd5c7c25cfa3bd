package assert

import "strings"

// Emitter receives evaluated chain outcomes. The events package provides the
// process-wide implementation; chains accept the interface so this package
// stays a leaf.
type Emitter interface {
	EmitSuccess(Snapshot)
	EmitFailure(Snapshot)
}

// Matcher computes one outcome for a chain's value: the describing sentence
// and the raw boolean result. Matchers live in the match package; this core
// only consumes their output.
type Matcher[V any] func(V) (Sentence, bool)

// Chain accumulates matcher outcomes for one fluent expression.
//
// A chain is a single mutable builder confined to the goroutine that created
// it; it needs no locking. The canonical shape of an expression is
//
//	c := verity.Expect(n, "n")
//	defer c.Close()
//	c.That(match.Positive[int]()).And().That(match.LessThan(10))
//
// Close is the scope guard that performs the exactly-once evaluation when the
// expression's lifetime ends.
type Chain[V any] struct {
	value V
	label string

	pendingNegation bool
	steps           []Step
	final           bool

	evaluated  bool
	evaluating bool
	enhanced   bool

	emitter Emitter
}

// NewChain creates an empty, final chain for value. The label is the
// expression text used as the sentence subject ("count", "&items").
func NewChain[V any](value V, label string, emitter Emitter) *Chain[V] {
	return &Chain[V]{
		value:   value,
		label:   label,
		final:   true,
		emitter: emitter,
	}
}

// Value returns the value under test.
func (c *Chain[V]) Value() V { return c.value }

// Label returns the expression label.
func (c *Chain[V]) Label() string { return c.label }

// Steps returns a copy of the accumulated steps.
func (c *Chain[V]) Steps() []Step {
	steps := make([]Step, len(c.steps))
	copy(steps, c.steps)
	return steps
}

// WithDiagnostics sets the explicit diagnostics mode: when enhanced, a failed
// chain's error message is the fully rendered multi-step message instead of
// the first step's sentence.
func (c *Chain[V]) WithDiagnostics(enhanced bool) *Chain[V] {
	c.enhanced = enhanced
	return c
}

// Not negates the next matcher outcome. The negation applies to exactly one
// step: the next Check/That consumes it and resets it.
func (c *Chain[V]) Not() *Chain[V] {
	c.pendingNegation = true
	return c
}

// Check appends a step for an already-computed matcher outcome. The pending
// negation is applied to both the sentence and the raw result, the sentence's
// subject is set to the chain's label (reference markers stripped), and the
// chain becomes final again. The step slice is cloned on append so snapshots
// taken earlier never alias the new list.
func (c *Chain[V]) Check(sentence Sentence, raw bool) *Chain[V] {
	sentence = sentence.WithNegation(c.pendingNegation)
	sentence.Subject = strings.TrimLeft(c.label, "&*")

	passed := raw != c.pendingNegation

	steps := make([]Step, 0, len(c.steps)+1)
	steps = append(steps, c.steps...)
	steps = append(steps, Step{Sentence: sentence, Passed: passed, Op: OpNone})
	c.steps = steps

	c.pendingNegation = false
	c.final = true
	return c
}

// That applies a matcher to the chain's value and appends the outcome.
func (c *Chain[V]) That(m Matcher[V]) *Chain[V] {
	sentence, ok := m(c.value)
	return c.Check(sentence, ok)
}

// And joins the last step to the next with AND.
func (c *Chain[V]) And() *Chain[V] {
	c.SetConnector(OpAnd)
	return c
}

// Or joins the last step to the next with OR, terminating the current
// AND-segment.
func (c *Chain[V]) Or() *Chain[V] {
	c.SetConnector(OpOr)
	return c
}

// SetConnector sets the outgoing connector on the last appended step.
// No-op on an empty chain.
func (c *Chain[V]) SetConnector(op LogicalOp) {
	if len(c.steps) == 0 {
		return
	}
	c.steps[len(c.steps)-1].Op = op
}

// MarkIntermediate marks the chain as an intermediate link: Close will not
// evaluate it. Used when a chain value is handed to a further matcher call
// that will produce the final link.
func (c *Chain[V]) MarkIntermediate() { c.final = false }

// MarkFinal restores the default: Close evaluates the chain.
func (c *Chain[V]) MarkFinal() { c.final = true }

// Snapshot returns the type-erased view used by events and reporting.
func (c *Chain[V]) Snapshot() Snapshot {
	return Snapshot{Label: c.label, Steps: c.steps}.Clone()
}

// Evaluate computes the chain result now and emits it, regardless of
// finality. This is the explicit, non-raising path: callers that want the
// boolean instead of a failure panic use this.
func (c *Chain[V]) Evaluate() bool {
	passed := EvaluateSteps(c.steps)
	c.emit(passed)
	c.evaluated = true
	return passed
}

// Close is the scope guard ending the expression's lifetime; it is meant to
// be deferred immediately after the chain is created. On the first call of a
// final, non-empty chain it evaluates, emits, and panics with a *FailureError
// when the chain failed. Subsequent calls are no-ops.
//
// When Close runs while a panic is already unwinding, evaluation is
// suppressed and the in-flight panic is re-raised: the chain must not mask or
// duplicate the failure already propagating. This detection requires Close to
// be the deferred call itself (defer c.Close()), not wrapped in another
// function.
func (c *Chain[V]) Close() {
	if r := recover(); r != nil {
		panic(r)
	}
	if len(c.steps) == 0 || !c.final || c.evaluated || c.evaluating {
		return
	}

	// Reentrancy guard: reporting handlers that issue assertions during
	// evaluation must not re-trigger evaluation of this chain.
	c.evaluating = true
	defer func() { c.evaluating = false }()

	c.evaluated = true
	passed := EvaluateSteps(c.steps)
	c.emit(passed)

	if !passed {
		panic(&FailureError{Chain: c.Snapshot(), Enhanced: c.enhanced})
	}
}

func (c *Chain[V]) emit(passed bool) {
	if c.emitter == nil {
		return
	}
	snap := c.Snapshot()
	if passed {
		c.emitter.EmitSuccess(snap)
	} else {
		c.emitter.EmitFailure(snap)
	}
}
