// Package describe derives a one-sentence summary of a skill from its
// SKILL.md document, replacing templated placeholder descriptions.
package describe

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Limits applied to extracted descriptions.
const (
	MaxLength         = 250
	minRuleLength     = 20
	minFallbackLength = 30
	fallbackSentences = 5
	ellipsis          = "..."
)

// GenericPrefix starts every placeholder description produced by the
// catalog builder.
const GenericPrefix = "Claude Code skill for"

// genericMarker is rejected anywhere inside a candidate.
const genericMarker = "claude code skill"

var genericPattern = regexp.MustCompile(`(?i)^` + regexp.QuoteMeta(GenericPrefix))

// IsGeneric reports whether desc is a placeholder description.
func IsGeneric(desc string) bool {
	return genericPattern.MatchString(desc)
}

// Result is the outcome of Extract. OK is false when no rule produced an
// acceptable description; Description is empty in that case.
type Result struct {
	Description string   `json:"description,omitempty"`
	Rule        RuleName `json:"rule,omitempty"`
	Subject     string   `json:"subject,omitempty"`
	OK          bool     `json:"ok"`
}

func (r Result) String() string {
	if !r.OK {
		return "<no match>"
	}
	return r.Description
}

// Extract returns the first acceptable description found in document.
// subject identifies the document in the result (usually the skill name)
// and never influences the extracted text.
func Extract(document, subject string) Result {
	body := StripFrontmatter(document)

	for _, rule := range rules {
		raw, ok := rule.Match(body)
		if !ok {
			continue
		}
		desc := Clean(raw)
		if rule.settled && desc != raw {
			continue
		}
		if Acceptable(desc, minRuleLength) {
			return Result{Description: desc, Rule: rule.Name, Subject: subject, OK: true}
		}
	}

	if desc, ok := fallback(body); ok {
		return Result{Description: desc, Rule: RuleFallbackSentence, Subject: subject, OK: true}
	}
	return Result{Subject: subject}
}

var (
	whitespaceRe   = regexp.MustCompile(`\s+`)
	linkRe         = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	emphasisRe     = regexp.MustCompile("[*_`]")
	fallbackMarkRe = regexp.MustCompile("[#*_`\\[\\]()]")
	sentenceRe     = regexp.MustCompile(`[A-Z][^.!?]*(?:\.\.\.|[.!?])`)
)

// Clean normalizes a raw capture: whitespace collapsed, markdown links
// reduced to their label, emphasis and code markers removed, truncated to
// MaxLength with an ellipsis, and terminated with a period.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = linkRe.ReplaceAllString(s, "$1")
	s = emphasisRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	if utf8.RuneCountInString(s) > MaxLength {
		s = string([]rune(s)[:MaxLength-len(ellipsis)]) + ellipsis
	}
	return terminate(s)
}

// terminate appends a period unless s already ends with one (an ellipsis
// included).
func terminate(s string) string {
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// Acceptable reports whether a cleaned description is longer than minLen
// characters and free of placeholder wording.
func Acceptable(desc string, minLen int) bool {
	if utf8.RuneCountInString(desc) <= minLen {
		return false
	}
	return !strings.Contains(strings.ToLower(desc), genericMarker)
}

// fallback scans the first few sentence-like spans of body.
func fallback(body string) (string, bool) {
	for _, sentence := range sentenceRe.FindAllString(body, fallbackSentences) {
		s := fallbackMarkRe.ReplaceAllString(sentence, "")
		s = strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
		if utf8.RuneCountInString(s) >= MaxLength {
			continue
		}
		if Acceptable(s, minFallbackLength) {
			return terminate(s), true
		}
	}
	return "", false
}

// StripFrontmatter removes a leading block delimited by "---" lines.
// Documents without a closing delimiter are returned unchanged.
func StripFrontmatter(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	lines := strings.SplitAfter(doc, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return doc
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return strings.Join(lines[i+1:], "")
		}
	}
	return doc
}
