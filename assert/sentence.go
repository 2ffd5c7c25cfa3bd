package assert

import "strings"

// Sentence is the subject/verb/object description of one matcher outcome.
// Matchers build a Sentence without a subject; the chain fills in the subject
// (its expression label) when the step is attached. After that a Sentence is
// never mutated.
type Sentence struct {
	// Subject is usually the expression label, e.g. "count".
	Subject string
	// Verb is the infinitive verb, e.g. "be", "have", "contain".
	Verb string
	// Object completes the sentence, e.g. "greater than 42".
	Object string
	// Qualifiers are appended after the object, e.g. "when rounded".
	Qualifiers []string
	// Negated records whether the step was negated.
	Negated bool
	// Actual is the observed value rendered by the matcher.
	// Shown as "(got ...)" on failing steps.
	Actual string
}

// NewSentence creates a sentence with an empty subject.
func NewSentence(verb, object string) Sentence {
	return Sentence{Verb: verb, Object: object}
}

// WithQualifier returns a copy with the qualifier appended.
func (s Sentence) WithQualifier(qualifier string) Sentence {
	qs := make([]string, 0, len(s.Qualifiers)+1)
	qs = append(qs, s.Qualifiers...)
	qs = append(qs, qualifier)
	s.Qualifiers = qs
	return s
}

// WithNegation returns a copy with the negation flag set.
func (s Sentence) WithNegation(negated bool) Sentence {
	s.Negated = negated
	return s
}

// WithActual returns a copy carrying the rendered observed value.
func (s Sentence) WithActual(actual string) Sentence {
	s.Actual = actual
	return s
}

// String renders the raw form without a subject: "not be positive".
func (s Sentence) String() string {
	var b strings.Builder
	if s.Negated {
		b.WriteString("not ")
	}
	b.WriteString(s.Verb)
	b.WriteByte(' ')
	b.WriteString(s.Object)
	s.writeQualifiers(&b)
	return b.String()
}

// Grammatical renders with "not" placed after the verb: "be not positive".
func (s Sentence) Grammatical() string {
	var b strings.Builder
	b.WriteString(s.Verb)
	if s.Negated {
		b.WriteString(" not")
	}
	b.WriteByte(' ')
	b.WriteString(s.Object)
	s.writeQualifiers(&b)
	return b.String()
}

// Conjugated renders with the verb conjugated for the given subject:
// "is not positive" for a singular subject, "are not positive" for a plural one.
func (s Sentence) Conjugated(subject string) string {
	verb := conjugateVerb(s.Verb, isPluralSubject(subject))

	var b strings.Builder
	b.WriteString(verb)
	if s.Negated {
		b.WriteString(" not")
	}
	b.WriteByte(' ')
	b.WriteString(s.Object)
	s.writeQualifiers(&b)
	return b.String()
}

func (s Sentence) writeQualifiers(b *strings.Builder) {
	for _, q := range s.Qualifiers {
		b.WriteByte(' ')
		b.WriteString(q)
	}
}

// irregularPlurals covers nouns the suffix rules get wrong.
var irregularPlurals = map[string]bool{
	"data":     true,
	"children": true,
	"people":   true,
	"indices":  true,
	"men":      true,
	"women":    true,
}

// isPluralSubject guesses whether a subject name refers to a plural noun.
// For snake_case names the last segment decides ("user_items" is plural,
// "user_status" is not).
func isPluralSubject(subject string) bool {
	base := extractBaseName(subject)
	segments := strings.Split(base, "_")
	word := strings.ToLower(segments[len(segments)-1])

	if word == "" {
		return false
	}
	if irregularPlurals[word] {
		return true
	}
	// Words ending in "ss", "us" or "is" are singular despite the trailing
	// 's' (status, address, process, bus, analysis).
	if strings.HasSuffix(word, "ss") || strings.HasSuffix(word, "us") || strings.HasSuffix(word, "is") {
		return false
	}
	return strings.HasSuffix(word, "s")
}

// extractBaseName reduces an expression to its base identifier:
// "&value" -> "value", "values.Len()" -> "values", "items[0]" -> "items".
func extractBaseName(expr string) string {
	expr = strings.TrimLeft(expr, "&*")
	if i := strings.IndexByte(expr, '.'); i >= 0 {
		return expr[:i]
	}
	if i := strings.IndexByte(expr, '['); i >= 0 {
		return expr[:i]
	}
	return expr
}

// conjugateVerb converts an infinitive verb to the present tense form matching
// the subject's plurality. The verb set is small and controlled by the matcher
// packages, so a manual table plus suffix rules is sufficient.
func conjugateVerb(verb string, plural bool) string {
	switch verb {
	case "be":
		if plural {
			return "are"
		}
		return "is"
	case "have":
		if plural {
			return "have"
		}
		return "has"
	case "contain":
		if plural {
			return "contain"
		}
		return "contains"
	case "start with":
		if plural {
			return "start with"
		}
		return "starts with"
	case "end with":
		if plural {
			return "end with"
		}
		return "ends with"
	}

	if plural {
		return verb
	}
	switch {
	case strings.HasSuffix(verb, "s"), strings.HasSuffix(verb, "x"), strings.HasSuffix(verb, "z"),
		strings.HasSuffix(verb, "sh"), strings.HasSuffix(verb, "ch"):
		return verb + "es"
	case strings.HasSuffix(verb, "y") && !hasVowelBeforeY(verb):
		return verb[:len(verb)-1] + "ies"
	default:
		return verb + "s"
	}
}

func hasVowelBeforeY(verb string) bool {
	if len(verb) < 2 {
		return false
	}
	switch verb[len(verb)-2] {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
