package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// step builds a bare step for segment tests; the sentence content is
// irrelevant to evaluation.
func step(passed bool, op LogicalOp) Step {
	return Step{Sentence: NewSentence("be", "whatever"), Passed: passed, Op: op}
}

func TestEvaluateSteps_Empty(t *testing.T) {
	assert.True(t, EvaluateSteps(nil))
}

func TestEvaluateSteps_SingleStep(t *testing.T) {
	assert.True(t, EvaluateSteps([]Step{step(true, OpNone)}))
	assert.False(t, EvaluateSteps([]Step{step(false, OpNone)}))
}

func TestEvaluateSteps_TwoStepsAnd(t *testing.T) {
	assert.True(t, EvaluateSteps([]Step{step(true, OpAnd), step(true, OpNone)}))
	assert.False(t, EvaluateSteps([]Step{step(false, OpAnd), step(true, OpNone)}))
	assert.False(t, EvaluateSteps([]Step{step(true, OpAnd), step(false, OpNone)}))
}

func TestEvaluateSteps_TwoStepsOr(t *testing.T) {
	assert.True(t, EvaluateSteps([]Step{step(false, OpOr), step(true, OpNone)}))
	assert.True(t, EvaluateSteps([]Step{step(true, OpOr), step(false, OpNone)}))
	assert.False(t, EvaluateSteps([]Step{step(false, OpOr), step(false, OpNone)}))
}

func TestEvaluateSteps_MissingConnectorDefaultsToAnd(t *testing.T) {
	assert.False(t, EvaluateSteps([]Step{step(true, OpNone), step(false, OpNone)}))
	assert.True(t, EvaluateSteps([]Step{step(true, OpNone), step(true, OpNone)}))
}

func TestEvaluateSteps_AllAnd(t *testing.T) {
	steps := []Step{step(true, OpAnd), step(true, OpAnd), step(true, OpNone)}
	assert.True(t, EvaluateSteps(steps))

	steps[1].Passed = false
	assert.False(t, EvaluateSteps(steps))
}

func TestEvaluateSteps_AllOr(t *testing.T) {
	steps := []Step{step(false, OpOr), step(false, OpOr), step(true, OpNone)}
	assert.True(t, EvaluateSteps(steps))

	steps[2].Passed = false
	assert.False(t, EvaluateSteps(steps))
}

func TestSegments_Grouping(t *testing.T) {
	// [T AND T OR F AND F] splits into {[0 1], [2 3]}.
	steps := []Step{
		step(true, OpAnd),
		step(true, OpOr),
		step(false, OpAnd),
		step(false, OpNone),
	}

	segs := segments(steps)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, segs)

	// First segment passes, so the chain passes.
	assert.True(t, EvaluateSteps(steps))
}

func TestSegments_ThreeSegments(t *testing.T) {
	// {[T T], [F F], [T F]} -> {true, false, false} -> true.
	steps := []Step{
		step(true, OpAnd),
		step(true, OpOr),
		step(false, OpAnd),
		step(false, OpOr),
		step(true, OpAnd),
		step(false, OpNone),
	}

	segs := segments(steps)
	assert.Equal(t, [][]int{{0, 1}, {2, 3}, {4, 5}}, segs)
	assert.True(t, EvaluateSteps(steps))
}

func TestEvaluateSteps_FastPathsMatchGeneralAlgorithm(t *testing.T) {
	// Every 1- and 2-step configuration must agree with the segment walk.
	ops := []LogicalOp{OpNone, OpAnd, OpOr}
	bools := []bool{false, true}

	general := func(steps []Step) bool {
		for _, seg := range segments(steps) {
			pass := true
			for _, idx := range seg {
				pass = pass && steps[idx].Passed
			}
			if pass {
				return true
			}
		}
		return false
	}

	for _, a := range bools {
		for _, b := range bools {
			for _, op := range ops {
				steps := []Step{step(a, op), step(b, OpNone)}
				assert.Equal(t, general(steps), EvaluateSteps(steps),
					"a=%v op=%v b=%v", a, op, b)
			}
		}
	}
}
