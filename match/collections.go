package match

import (
	"fmt"

	"github.com/verityhq/verity/assert"
)

// SliceContains matches slices holding at least one element equal to want.
func SliceContains[T comparable](want T) assert.Matcher[[]T] {
	return func(v []T) (assert.Sentence, bool) {
		s := assert.NewSentence("contain", fmt.Sprintf("%v", want)).WithActual(fmt.Sprintf("%v", v))
		for _, elem := range v {
			if elem == want {
				return s, true
			}
		}
		return s, false
	}
}

// SliceEmpty matches slices with no elements. A nil slice is empty.
func SliceEmpty[T any]() assert.Matcher[[]T] {
	return func(v []T) (assert.Sentence, bool) {
		s := assert.NewSentence("be", "empty").WithActual(fmt.Sprintf("%d elements", len(v)))
		return s, len(v) == 0
	}
}

// SliceLen matches slices of exactly n elements.
func SliceLen[T any](n int) assert.Matcher[[]T] {
	return func(v []T) (assert.Sentence, bool) {
		s := assert.NewSentence("have", fmt.Sprintf("length %d", n)).
			WithActual(fmt.Sprintf("length %d", len(v)))
		return s, len(v) == n
	}
}

// HasKey matches maps containing the key.
func HasKey[K comparable, V any](key K) assert.Matcher[map[K]V] {
	return func(v map[K]V) (assert.Sentence, bool) {
		s := assert.NewSentence("have", fmt.Sprintf("key %v", key))
		_, ok := v[key]
		return s, ok
	}
}

// HasValue matches maps containing at least one entry with the value.
func HasValue[K, V comparable](want V) assert.Matcher[map[K]V] {
	return func(v map[K]V) (assert.Sentence, bool) {
		s := assert.NewSentence("have", fmt.Sprintf("value %v", want))
		for _, elem := range v {
			if elem == want {
				return s, true
			}
		}
		return s, false
	}
}

// MapLen matches maps of exactly n entries.
func MapLen[K comparable, V any](n int) assert.Matcher[map[K]V] {
	return func(v map[K]V) (assert.Sentence, bool) {
		s := assert.NewSentence("have", fmt.Sprintf("length %d", n)).
			WithActual(fmt.Sprintf("length %d", len(v)))
		return s, len(v) == n
	}
}
