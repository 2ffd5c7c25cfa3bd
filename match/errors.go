package match

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verityhq/verity/assert"
)

// NoError matches a nil error.
func NoError() assert.Matcher[error] {
	return func(v error) (assert.Sentence, bool) {
		s := assert.NewSentence("be", "nil")
		if v != nil {
			s = s.WithActual(fmt.Sprintf("%q", v.Error()))
		}
		return s, v == nil
	}
}

// IsError matches errors wrapping target, per errors.Is.
func IsError(target error) assert.Matcher[error] {
	return func(v error) (assert.Sentence, bool) {
		s := assert.NewSentence("wrap", fmt.Sprintf("%q", target))
		if v != nil {
			s = s.WithActual(fmt.Sprintf("%q", v.Error()))
		} else {
			s = s.WithActual("nil")
		}
		return s, errors.Is(v, target)
	}
}

// ErrorContains matches non-nil errors whose message contains sub.
func ErrorContains(sub string) assert.Matcher[error] {
	return func(v error) (assert.Sentence, bool) {
		s := assert.NewSentence("mention", fmt.Sprintf("%q", sub))
		if v == nil {
			return s.WithActual("nil"), false
		}
		return s.WithActual(fmt.Sprintf("%q", v.Error())), strings.Contains(v.Error(), sub)
	}
}
