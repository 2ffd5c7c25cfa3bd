package assert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSentence(t *testing.T) {
	s := NewSentence("be", "positive")

	assert.Equal(t, "", s.Subject)
	assert.Equal(t, "be", s.Verb)
	assert.Equal(t, "positive", s.Object)
	assert.Empty(t, s.Qualifiers)
	assert.False(t, s.Negated)
}

func TestSentenceString(t *testing.T) {
	s := NewSentence("be", "positive")
	assert.Equal(t, "be positive", s.String())

	assert.Equal(t, "not be positive", s.WithNegation(true).String())
}

func TestSentenceQualifiers(t *testing.T) {
	s := NewSentence("be", "in range").WithQualifier("when rounded")
	assert.Equal(t, []string{"when rounded"}, s.Qualifiers)

	s2 := s.WithQualifier("with tolerance")
	assert.Equal(t, []string{"when rounded", "with tolerance"}, s2.Qualifiers)
	// The original sentence must not see the second qualifier.
	assert.Equal(t, []string{"when rounded"}, s.Qualifiers)

	assert.Equal(t, "be in range when rounded with tolerance", s2.String())
	assert.Equal(t, "not be in range when rounded", s.WithNegation(true).String())
}

func TestSentenceGrammatical(t *testing.T) {
	s := NewSentence("be", "positive")
	assert.Equal(t, "be positive", s.Grammatical())

	// "not" moves after the verb in the grammatical form.
	assert.Equal(t, "be not positive", s.WithNegation(true).Grammatical())

	qualified := s.WithNegation(true).WithQualifier("when rounded")
	assert.Equal(t, "be not positive when rounded", qualified.Grammatical())
}

func TestSentenceConjugated(t *testing.T) {
	s := NewSentence("be", "positive")
	assert.Equal(t, "is positive", s.Conjugated("value"))
	assert.Equal(t, "are positive", s.Conjugated("values"))

	negated := s.WithNegation(true)
	assert.Equal(t, "is not positive", negated.Conjugated("value"))
	assert.Equal(t, "are not positive", negated.Conjugated("values"))

	contain := NewSentence("contain", "element")
	assert.Equal(t, "contains element", contain.Conjugated("list"))
	assert.Equal(t, "contain element", contain.Conjugated("lists"))
}

func TestIsPluralSubject(t *testing.T) {
	singular := []string{"value", "number", "count", "item", "status", "address", "process", "bus", "user_status", "http_address"}
	for _, s := range singular {
		assert.False(t, isPluralSubject(s), "expected %q to be singular", s)
	}

	plural := []string{"values", "numbers", "items", "lists", "entries", "data", "my_values", "test_items"}
	for _, s := range plural {
		assert.True(t, isPluralSubject(s), "expected %q to be plural", s)
	}
}

func TestExtractBaseName(t *testing.T) {
	assert.Equal(t, "value", extractBaseName("&value"))
	assert.Equal(t, "values", extractBaseName("values.Len()"))
	assert.Equal(t, "items", extractBaseName("items[0]"))
	assert.Equal(t, "items", extractBaseName("&items[0]"))
	assert.Equal(t, "value", extractBaseName("*value"))
}

func TestConjugateVerb(t *testing.T) {
	cases := []struct {
		verb     string
		singular string
		plural   string
	}{
		{"be", "is", "are"},
		{"have", "has", "have"},
		{"contain", "contains", "contain"},
		{"start with", "starts with", "start with"},
		{"end with", "ends with", "end with"},
		{"exceed", "exceeds", "exceed"},
		{"include", "includes", "include"},
		{"pass", "passes", "pass"},
		{"fix", "fixes", "fix"},
		{"match", "matches", "match"},
		{"try", "tries", "try"},
		{"comply", "complies", "comply"},
		{"play", "plays", "play"},
		{"enjoy", "enjoys", "enjoy"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.singular, conjugateVerb(tc.verb, false), "singular form of %q", tc.verb)
		assert.Equal(t, tc.plural, conjugateVerb(tc.verb, true), "plural form of %q", tc.verb)
	}
}
