package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Engine matches every keyword of the taxonomy in a single pass over the
// input using the Aho-Corasick algorithm. Time complexity is O(n + m) where
// n is the input length and m the number of hits, independent of the number
// of keywords.
//
// The engine is immutable after construction: the rule table is configuration
// data, and callers wanting a different table build a new engine.
type Engine struct {
	matcher *ahocorasick.Matcher
	ruleIdx []int // keyword index -> rule index
	rules   []Rule
}

// NewEngine pre-computes the keyword state machine from an ordered rule table.
func NewEngine(rules []Rule) *Engine {
	e := &Engine{rules: rules}

	var patterns [][]byte
	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			patterns = append(patterns, []byte(kw))
			e.ruleIdx = append(e.ruleIdx, i)
		}
	}

	if len(patterns) > 0 {
		e.matcher = ahocorasick.NewMatcher(patterns)
	}
	return e
}

// Match returns the category of the earliest rule with a keyword hit in the
// description. Rule order is the tie-break: when keywords from several rules
// hit, the rule listed first in the table wins.
func (e *Engine) Match(description string) (string, bool) {
	if e.matcher == nil {
		return "", false
	}

	hits := e.matcher.Match([]byte(strings.ToLower(description)))
	if len(hits) == 0 {
		return "", false
	}

	best := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(e.ruleIdx) {
			continue
		}
		if rule := e.ruleIdx[idx]; best == -1 || rule < best {
			best = rule
		}
	}
	if best == -1 {
		return "", false
	}
	return e.rules[best].Category, true
}

// RuleCount returns the number of rules loaded in the engine.
func (e *Engine) RuleCount() int {
	return len(e.rules)
}
