package services

import (
	"strings"
	"unicode"
)

// DefaultGroup is assigned when no keyword rule matches.
const DefaultGroup = "Other"

// GroupClassifier assigns the static category a node carries for the
// whole session. It runs once at ingestion; clustering never consults it
// again. The interface exists so the keyword heuristic can be swapped
// without touching the clusterer.
type GroupClassifier interface {
	// Classify derives a group from a node's label and optional free text.
	Classify(label, text string) string
}

// KeywordRule maps a group name to the keywords that select it.
type KeywordRule struct {
	Group    string
	Keywords []string
}

// KeywordClassifier is the default static heuristic: the first rule with
// a keyword present in the node's tokenized label or free text wins.
type KeywordClassifier struct {
	rules    []KeywordRule
	fallback string
}

// DefaultRules returns the built-in rule set used when a document carries
// no explicit groups. Rule order matters: earlier rules win ties.
func DefaultRules() []KeywordRule {
	return []KeywordRule{
		{Group: "Infrastructure", Keywords: []string{"server", "cluster", "deploy", "network", "storage"}},
		{Group: "Data", Keywords: []string{"database", "query", "schema", "pipeline", "dataset"}},
		{Group: "Product", Keywords: []string{"feature", "release", "roadmap", "design", "user"}},
		{Group: "Operations", Keywords: []string{"incident", "alert", "oncall", "runbook", "monitor"}},
	}
}

// NewKeywordClassifier creates a classifier from an ordered rule list.
// An empty fallback defaults to DefaultGroup.
func NewKeywordClassifier(rules []KeywordRule, fallback string) *KeywordClassifier {
	if fallback == "" {
		fallback = DefaultGroup
	}
	return &KeywordClassifier{rules: rules, fallback: fallback}
}

// Classify returns the group for the first matching rule, or the
// fallback when nothing matches.
func (kc *KeywordClassifier) Classify(label, text string) string {
	tokens := tokenizeWords(label + " " + text)

	for _, rule := range kc.rules {
		for _, keyword := range rule.Keywords {
			if tokens[strings.ToLower(keyword)] {
				return rule.Group
			}
		}
	}

	return kc.fallback
}

// tokenizeWords breaks text into a set of unique lowercase words,
// splitting on anything that is not a letter or digit.
func tokenizeWords(text string) map[string]bool {
	words := make(map[string]bool)
	text = strings.ToLower(text)

	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			words[current.String()] = true
			current.Reset()
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return words
}
