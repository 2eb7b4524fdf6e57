package describe

import "regexp"

// RuleName identifies the rule that produced a description.
type RuleName string

// Rule names in evaluation order. RuleFallbackSentence is not part of the
// chain; it marks results from the sentence scan that runs after it.
const (
	RuleDescriptionField    RuleName = "description-field"
	RuleHeadingParagraph    RuleName = "heading-paragraph"
	RuleSingleLine          RuleName = "single-line"
	RuleUsePhrase           RuleName = "use-phrase"
	RuleCapitalizedSentence RuleName = "capitalized-sentence"
	RuleFallbackSentence    RuleName = "fallback-sentence"
)

// Rule captures a raw candidate description from a document body.
type Rule struct {
	Name    RuleName
	pattern *regexp.Regexp
	// settled rules only accept a capture that Clean leaves unchanged.
	settled bool
}

// Match returns the rule's capture from body, if any.
func (r Rule) Match(body string) (string, bool) {
	m := r.pattern.FindStringSubmatch(body)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

// rules is evaluated top to bottom; the first capture that survives Clean and
// Acceptable wins. Reordering changes which description a document yields.
//
// Sentence terminators accept "..." ahead of "." so a description that was
// truncated by Clean extracts back to itself.
var rules = []Rule{
	{
		// description: "..." as a key-value line, quotes optional.
		Name:    RuleDescriptionField,
		pattern: regexp.MustCompile(`(?i)description:\s*["']?([^"'\n]+)["']?`),
	},
	{
		// First paragraph line after a top-level heading.
		Name:    RuleHeadingParagraph,
		pattern: regexp.MustCompile(`(?m)^#\s+.+?\n\n([^\n]+)`),
	},
	{
		// A document that is one line already in cleaned form is its own
		// description, so Extract returns its own output unchanged.
		Name:    RuleSingleLine,
		pattern: regexp.MustCompile(`^\s*([\p{L}\p{N}][^\n]*?)\s*$`),
		settled: true,
	},
	{
		// "Use when ...", "Use this ...", "Use for ..." up to the first period.
		Name:    RuleUsePhrase,
		pattern: regexp.MustCompile(`(?i)Use (?:when|this|for)[:\s]+([^.\n]+(?:\.\.\.|\.))`),
	},
	{
		// A capitalized sentence of 20+ characters, optionally under a heading.
		Name:    RuleCapitalizedSentence,
		pattern: regexp.MustCompile(`(?m)^(?:#{1,3}\s+.*?\n+)?([A-Z][^.\n]{20,}(?:\.\.\.|\.))`),
	},
}

// Rules returns the extraction rules in evaluation order.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}
