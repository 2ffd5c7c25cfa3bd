package match

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/verityhq/verity/assert"
)

// PatternError reports an invalid regular expression handed to
// MatchesPattern. It is raised at construction time: a matcher that can never
// evaluate is a bug at the call site, not a failing assertion.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid match pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Empty matches the empty string.
func Empty() assert.Matcher[string] {
	return func(v string) (assert.Sentence, bool) {
		return assert.NewSentence("be", "empty").WithActual(fmt.Sprintf("%q", v)), v == ""
	}
}

// HasLength matches strings of exactly n bytes.
func HasLength(n int) assert.Matcher[string] {
	return func(v string) (assert.Sentence, bool) {
		s := assert.NewSentence("have", fmt.Sprintf("length %d", n)).
			WithActual(fmt.Sprintf("length %d", len(v)))
		return s, len(v) == n
	}
}

// Contains matches strings containing sub.
func Contains(sub string) assert.Matcher[string] {
	return func(v string) (assert.Sentence, bool) {
		s := assert.NewSentence("contain", fmt.Sprintf("%q", sub)).WithActual(fmt.Sprintf("%q", v))
		return s, strings.Contains(v, sub)
	}
}

// StartsWith matches strings beginning with prefix.
func StartsWith(prefix string) assert.Matcher[string] {
	return func(v string) (assert.Sentence, bool) {
		s := assert.NewSentence("start with", fmt.Sprintf("%q", prefix)).WithActual(fmt.Sprintf("%q", v))
		return s, strings.HasPrefix(v, prefix)
	}
}

// EndsWith matches strings ending with suffix.
func EndsWith(suffix string) assert.Matcher[string] {
	return func(v string) (assert.Sentence, bool) {
		s := assert.NewSentence("end with", fmt.Sprintf("%q", suffix)).WithActual(fmt.Sprintf("%q", v))
		return s, strings.HasSuffix(v, suffix)
	}
}

// MatchesPattern matches strings against an anchored-or-not regular
// expression. An invalid pattern panics with *PatternError at construction.
func MatchesPattern(pattern string) assert.Matcher[string] {
	re, err := regexp.Compile(pattern)
	if err != nil {
		panic(&PatternError{Pattern: pattern, Err: err})
	}
	return func(v string) (assert.Sentence, bool) {
		s := assert.NewSentence("match", fmt.Sprintf("pattern %q", pattern)).
			WithActual(fmt.Sprintf("%q", v))
		return s, re.MatchString(v)
	}
}
