package catalog

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FilterOptions defines which items to include. All set criteria must match.
type FilterOptions struct {
	Search     string   // case-insensitive substring of name or description
	Categories []string // case-insensitive category names
	Patterns   []string // glob patterns matched against the name
}

// Filter returns the items matching opts, in input order.
func Filter(items []Item, opts FilterOptions) []Item {
	var out []Item
	for _, it := range items {
		if matches(it, opts) {
			out = append(out, it)
		}
	}
	return out
}

func matches(it Item, opts FilterOptions) bool {
	if opts.Search != "" && !MatchesSearch(it, opts.Search) {
		return false
	}
	if len(opts.Categories) > 0 && !containsFold(opts.Categories, it.Group()) {
		return false
	}
	if len(opts.Patterns) > 0 && !MatchesAnyPattern(it.Name, opts.Patterns) {
		return false
	}
	return true
}

// MatchesSearch reports whether query occurs in the item's name or
// description, ignoring case.
func MatchesSearch(it Item, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(it.Name), q) ||
		strings.Contains(strings.ToLower(it.Description), q)
}

// MatchesAnyPattern reports whether name matches one of the glob patterns.
// Invalid patterns never match; check them first with ValidatePatterns.
func MatchesAnyPattern(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// ValidatePatterns returns an error for the first malformed glob.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern %q", p)
		}
	}
	return nil
}

// IsPattern reports whether s contains glob metacharacters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
