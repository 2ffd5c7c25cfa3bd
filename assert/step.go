package assert

// LogicalOp is the connector between a step and the step that follows it.
type LogicalOp int

const (
	// OpNone marks the last step of a chain (no outgoing connector).
	OpNone LogicalOp = iota
	// OpAnd joins this step and the next into the same segment.
	OpAnd
	// OpOr terminates the current segment; the next step starts a new one.
	OpOr
)

// String returns the connector as it appears in rendered messages.
func (op LogicalOp) String() string {
	switch op {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	default:
		return ""
	}
}

// Step is one evaluated matcher outcome in a chain. Steps are immutable once
// appended, except for the outgoing connector which a subsequent And()/Or()
// call sets exactly once.
type Step struct {
	Sentence Sentence
	Passed   bool
	Op       LogicalOp
}

// Snapshot is a type-erased view of a completed chain: the expression label
// plus the accumulated steps. Events and reporting operate on snapshots so
// they stay independent of the chain's value type.
type Snapshot struct {
	Label string
	Steps []Step
}

// Clone returns a deep-enough copy; steps are value types so a slice copy
// suffices.
func (s Snapshot) Clone() Snapshot {
	steps := make([]Step, len(s.Steps))
	copy(steps, s.Steps)
	return Snapshot{Label: s.Label, Steps: steps}
}
