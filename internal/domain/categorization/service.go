// Package categorization infers a spending category from a merchant or
// transaction description using an ordered keyword table.
package categorization

// Service is the category inference component. It is a pure function over
// its immutable rule table: exact keyword matching first (Aho-Corasick),
// then a conservative fuzzy pass, then the default category.
type Service struct {
	engine *Engine
	fuzzy  *FuzzyMatcher
}

// NewService creates a categorization service from an ordered rule table.
// Pass DefaultTaxonomy() unless a caller-specific table is needed.
func NewService(rules []Rule) *Service {
	return &Service{
		engine: NewEngine(rules),
		fuzzy:  NewFuzzyMatcher(rules),
	}
}

// Infer returns the category for a merchant/description string. It never
// returns an empty string: unmatched input maps to CategoryOther.
func (s *Service) Infer(description string) string {
	if description == "" {
		return CategoryOther
	}
	if category, ok := s.engine.Match(description); ok {
		return category
	}
	if category, ok := s.fuzzy.Match(description); ok {
		return category
	}
	return CategoryOther
}

// RuleCount reports the size of the loaded rule table.
func (s *Service) RuleCount() int {
	return s.engine.RuleCount()
}
