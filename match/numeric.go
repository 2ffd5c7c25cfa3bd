// Package match provides the built-in matcher library. Every constructor
// returns an assert.Matcher that inspects one value and describes the check
// as a sentence, so chains read as prose and failures report what was
// observed.
package match

import (
	"fmt"

	"github.com/verityhq/verity/assert"
)

// Number covers the types the numeric matchers accept.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Integer covers the types the parity matchers accept.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Positive matches values strictly greater than zero.
func Positive[N Number]() assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		return assert.NewSentence("be", "positive").WithActual(fmt.Sprint(v)), v > 0
	}
}

// Negative matches values strictly less than zero.
func Negative[N Number]() assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		return assert.NewSentence("be", "negative").WithActual(fmt.Sprint(v)), v < 0
	}
}

// Zero matches exactly zero.
func Zero[N Number]() assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		return assert.NewSentence("be", "zero").WithActual(fmt.Sprint(v)), v == 0
	}
}

// Even matches integers divisible by two.
func Even[N Integer]() assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		return assert.NewSentence("be", "even").WithActual(fmt.Sprint(v)), v%2 == 0
	}
}

// Odd matches integers not divisible by two.
func Odd[N Integer]() assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		return assert.NewSentence("be", "odd").WithActual(fmt.Sprint(v)), v%2 != 0
	}
}

// GreaterThan matches values strictly greater than want.
func GreaterThan[N Number](want N) assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		s := assert.NewSentence("be", fmt.Sprintf("greater than %v", want)).WithActual(fmt.Sprint(v))
		return s, v > want
	}
}

// GreaterOrEqual matches values greater than or equal to want.
func GreaterOrEqual[N Number](want N) assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		s := assert.NewSentence("be", fmt.Sprintf("at least %v", want)).WithActual(fmt.Sprint(v))
		return s, v >= want
	}
}

// LessThan matches values strictly less than want.
func LessThan[N Number](want N) assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		s := assert.NewSentence("be", fmt.Sprintf("less than %v", want)).WithActual(fmt.Sprint(v))
		return s, v < want
	}
}

// LessOrEqual matches values less than or equal to want.
func LessOrEqual[N Number](want N) assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		s := assert.NewSentence("be", fmt.Sprintf("at most %v", want)).WithActual(fmt.Sprint(v))
		return s, v <= want
	}
}

// InRange matches values in the closed interval [lo, hi].
func InRange[N Number](lo, hi N) assert.Matcher[N] {
	return func(v N) (assert.Sentence, bool) {
		s := assert.NewSentence("be", fmt.Sprintf("within [%v, %v]", lo, hi)).WithActual(fmt.Sprint(v))
		return s, v >= lo && v <= hi
	}
}
