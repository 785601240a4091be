// Package normalizer provides the shared text normalization used across the
// extraction pipeline: flexible date parsing and description cleanup.
package normalizer

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date layouts tried in order. Day-first variants come before month-first so
// ambiguous dates resolve the same way on every path.
var dateLayouts = []string{
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"1-2-2006",
	"2006-1-2",
	"2/1/06",
	"1/2/06",
	"2-1-06",
	"1-2-06",
}

// ParseFlexibleDate parses a date token against the canonical layout ladder.
// The first layout producing a valid calendar date wins.
func ParseFlexibleDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", s)
}

// Patterns locating a date token inside free text, one per canonical format.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`),
	regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{4})\b`),
	regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`),
	regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{2})\b`),
	regexp.MustCompile(`\b(\d{1,2}-\d{1,2}-\d{2})\b`),
}

// FindDate scans free text for the first token that parses to a valid
// calendar date, trying each canonical pattern in order.
func FindDate(text string) (time.Time, bool) {
	for _, pattern := range datePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			if t, err := ParseFlexibleDate(match); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

var spaceRun = regexp.MustCompile(`\s+`)

// CleanDescription trims and collapses whitespace in a description.
func CleanDescription(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
