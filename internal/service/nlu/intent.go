package nlu

import (
	"strings"

	"github.com/sandevgo/finbot/internal/core"
)

// rule is one predicate→intent mapping. Rules are evaluated in order
// and the first structurally-satisfied rule governs, so the order of
// the rules slice is part of the dispatch contract.
type rule struct {
	name    string
	matches func(lower string, words map[string]bool, e core.Entities) bool
	intent  core.Intent
}

var greetingWords = []string{"hello", "hi", "hey", "greetings"}

var rules = []rule{
	{
		name: "greeting",
		matches: func(lower string, words map[string]bool, e core.Entities) bool {
			return e.Empty() && hasAnyWord(words, greetingWords)
		},
		intent: core.IntentGreeting,
	},
	{
		name: "compare-years",
		matches: func(lower string, words map[string]bool, e core.Entities) bool {
			if e.Metric == "" {
				return false
			}
			return len(e.Years) >= 2 || words["compare"] || words["vs"] || words["versus"]
		},
		intent: core.IntentCompareYears,
	},
	{
		name: "trend-over-time",
		matches: func(lower string, words map[string]bool, e core.Entities) bool {
			if e.Metric == "" {
				return false
			}
			return words["trend"] || words["history"] || strings.Contains(lower, "over time")
		},
		intent: core.IntentTrendOverTime,
	},
	{
		name: "lookup-value",
		matches: func(lower string, words map[string]bool, e core.Entities) bool {
			return e.Metric != "" && len(e.Years) >= 1
		},
		intent: core.IntentLookupValue,
	},
	{
		name: "list-metrics",
		matches: func(lower string, words map[string]bool, e core.Entities) bool {
			return strings.Contains(lower, "what metrics") ||
				strings.Contains(lower, "which metrics") ||
				strings.Contains(lower, "what can you tell")
		},
		intent: core.IntentListMetrics,
	},
}

// MatchIntent classifies a message given its extracted entities.
// Follow-up entity resolution has already happened by the time this
// runs, so "and 2021?" arrives here with the inherited metric set.
func MatchIntent(message string, e core.Entities) core.Intent {
	lower := strings.ToLower(message)
	words := wordSet(lower)
	for _, r := range rules {
		if r.matches(lower, words, e) {
			return r.intent
		}
	}
	return core.IntentUnknown
}

// wordSet splits on non-letter/digit runes so "hi," counts as "hi" but
// "history" never counts as "hi".
func wordSet(lower string) map[string]bool {
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

func hasAnyWord(words map[string]bool, candidates []string) bool {
	for _, c := range candidates {
		if words[c] {
			return true
		}
	}
	return false
}
