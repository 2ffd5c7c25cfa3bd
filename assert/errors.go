package assert

import (
	"fmt"
	"strings"
)

// FailureError is the fatal error raised when a final chain evaluates false.
// It carries the complete chain snapshot so reporting code can render the
// full step list.
type FailureError struct {
	// Chain is the failed chain at evaluation time.
	Chain Snapshot
	// Enhanced selects the fully rendered multi-step message over the
	// first-step form.
	Enhanced bool
}

// Error implements the error interface.
func (e *FailureError) Error() string {
	if len(e.Chain.Steps) == 0 {
		return fmt.Sprintf("assertion failed: %s", e.Chain.Label)
	}

	if e.Enhanced {
		return fmt.Sprintf("assertion failed: %s", e.Chain.Message())
	}

	subject := strings.TrimLeft(e.Chain.Label, "&*")
	first := e.Chain.Steps[0]

	var b strings.Builder
	fmt.Fprintf(&b, "assertion failed: %s %s", subject, first.Sentence.Conjugated(e.Chain.Label))
	if !first.Passed && first.Sentence.Actual != "" {
		fmt.Fprintf(&b, " (got %s)", first.Sentence.Actual)
	}
	return b.String()
}

// Message renders the chain as a single sentence: the subject followed by
// every step's conjugated sentence joined by its connector.
func (s Snapshot) Message() string {
	if len(s.Steps) == 0 {
		return "no assertions made"
	}

	subject := strings.TrimLeft(s.Label, "&*")

	var b strings.Builder
	b.WriteString(subject)
	b.WriteByte(' ')
	b.WriteString(s.Steps[0].Sentence.Conjugated(s.Label))

	for i := 1; i < len(s.Steps); i++ {
		switch s.Steps[i-1].Op {
		case OpAnd:
			b.WriteString(" AND ")
		case OpOr:
			b.WriteString(" OR ")
		default:
			b.WriteString(" [MISSING OP] ")
		}
		b.WriteString(s.Steps[i].Sentence.Conjugated(s.Label))
	}

	return b.String()
}
