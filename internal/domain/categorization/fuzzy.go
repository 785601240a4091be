package categorization

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FuzzyMatcher catches near-miss merchant tokens that the exact keyword
// engine cannot see, e.g. OCR output like "NETFLLX" or "STARBUCKSS". It is
// deliberately conservative: only keywords of five or more characters are
// considered, and a token must rank within a small Levenshtein distance.
type FuzzyMatcher struct {
	keywords []string
	ruleIdx  []int
	rules    []Rule
}

// Tokens shorter than this are too easy to match by accident.
const fuzzyMinKeywordLen = 5

// Maximum Levenshtein distance accepted as a hit.
const fuzzyMaxDistance = 1

// NewFuzzyMatcher builds a fuzzy fallback matcher from the same rule table
// the exact engine uses.
func NewFuzzyMatcher(rules []Rule) *FuzzyMatcher {
	fm := &FuzzyMatcher{rules: rules}
	for i, rule := range rules {
		for _, kw := range rule.Keywords {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if len(kw) < fuzzyMinKeywordLen || strings.ContainsRune(kw, ' ') {
				continue
			}
			fm.keywords = append(fm.keywords, kw)
			fm.ruleIdx = append(fm.ruleIdx, i)
		}
	}
	return fm
}

// Match splits the description into tokens and looks for a keyword within
// fuzzyMaxDistance of any token. Earliest rule wins, same as the exact engine.
func (fm *FuzzyMatcher) Match(description string) (string, bool) {
	if len(fm.keywords) == 0 {
		return "", false
	}

	tokens := strings.Fields(strings.ToLower(description))
	best := -1

	for _, token := range tokens {
		token = strings.Trim(token, ".,;:()[]*#")
		if len(token) < fuzzyMinKeywordLen {
			continue
		}
		for i, kw := range fm.keywords {
			rank := fuzzy.LevenshteinDistance(token, kw)
			if rank < 0 || rank > fuzzyMaxDistance {
				continue
			}
			if rule := fm.ruleIdx[i]; best == -1 || rule < best {
				best = rule
			}
		}
	}

	if best == -1 {
		return "", false
	}
	return fm.rules[best].Category, true
}
