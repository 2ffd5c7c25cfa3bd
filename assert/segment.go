package assert

// EvaluateSteps reduces an ordered step sequence to a single boolean.
//
// Steps are partitioned into maximal runs separated at OR connectors (the OR
// step terminates its run; the following step starts a new one). A run passes
// when every step in it passed; the chain passes when any run passes. This is
// a one-pass sum-of-products reduction, which is what lets a fluent chain
// express "a AND b OR c" without an expression tree.
func EvaluateSteps(steps []Step) bool {
	switch len(steps) {
	case 0:
		// Vacuous truth: a chain with no steps has nothing to fail.
		return true
	case 1:
		return steps[0].Passed
	case 2:
		// Two steps reduce directly through their connector. This is
		// equivalent to the segment walk below; it exists as a reasoning
		// aid, not a different semantics.
		if steps[0].Op == OpOr {
			return steps[0].Passed || steps[1].Passed
		}
		return steps[0].Passed && steps[1].Passed
	}

	for _, seg := range segments(steps) {
		pass := true
		for _, idx := range seg {
			if !steps[idx].Passed {
				pass = false
				break
			}
		}
		if pass {
			return true
		}
	}
	return false
}

// segments groups step indices into AND-connected runs delimited by OR.
func segments(steps []Step) [][]int {
	var segs [][]int
	current := []int{0}

	for i := 1; i < len(steps); i++ {
		if steps[i-1].Op == OpOr {
			segs = append(segs, current)
			current = []int{i}
		} else {
			current = append(current, i)
		}
	}

	return append(segs, current)
}
