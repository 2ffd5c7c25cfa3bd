package match

import (
	"fmt"

	"github.com/google/go-cmp/cmp"

	"github.com/verityhq/verity/assert"
)

// EqualTo matches values deeply equal to want. On mismatch the observed value
// carries the cmp diff instead of a flat dump, so nested differences are
// visible in the failure output.
func EqualTo[T any](want T, opts ...cmp.Option) assert.Matcher[T] {
	return func(v T) (assert.Sentence, bool) {
		s := assert.NewSentence("equal", fmt.Sprintf("%+v", want))
		if diff := cmp.Diff(want, v, opts...); diff != "" {
			return s.WithActual("diff -want +got:\n" + diff), false
		}
		return s.WithActual(fmt.Sprintf("%+v", v)), true
	}
}

// True matches the boolean true.
func True() assert.Matcher[bool] {
	return func(v bool) (assert.Sentence, bool) {
		return assert.NewSentence("be", "true").WithActual(fmt.Sprint(v)), v
	}
}

// False matches the boolean false.
func False() assert.Matcher[bool] {
	return func(v bool) (assert.Sentence, bool) {
		return assert.NewSentence("be", "false").WithActual(fmt.Sprint(v)), !v
	}
}

// NilPtr matches a nil pointer.
func NilPtr[T any]() assert.Matcher[*T] {
	return func(v *T) (assert.Sentence, bool) {
		s := assert.NewSentence("be", "nil")
		if v != nil {
			s = s.WithActual(fmt.Sprintf("%+v", *v))
		}
		return s, v == nil
	}
}
