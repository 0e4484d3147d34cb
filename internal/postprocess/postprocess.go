// Package postprocess strips chatter that models wrap around a refined
// prompt. The dispatcher returns provider text verbatim; callers opt in to
// cleanup (refine --clean, the bridge's clean flag).
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes model artifacts from a refined prompt and returns the
// trimmed result. Phases run in order:
//  1. reasoning block removal
//  2. preamble removal ("Here is the refined prompt:")
//  3. code fence unwrapping
//  4. quote unwrapping
func Clean(text string) string {
	text = removeReasoning(text)
	text = removePreamble(text)
	text = removeFence(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// RE2 has no backreferences, so each tag pair is spelled out.
var reasoningRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>`,
)

// An opened tag with no closing tag means the model ran out of tokens.
var truncatedReasoningRe = regexp.MustCompile(`(?is)(?:<thinking>|<think>|<reasoning>).*$`)

func removeReasoning(text string) string {
	text = reasoningRe.ReplaceAllString(text, "")
	text = truncatedReasoningRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// Preambles are anchored at the start and must end with a colon so that a
// refined prompt which legitimately begins with "Here is" survives.
var preamblePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(?:certainly|sure|of course)[!,.]?\s*`),
	regexp.MustCompile(`(?i)^here(?:'s| is)(?: an?| the| your)? (?:refined|improved|rewritten|clearer|revised)(?: version of the| version of your)? prompt\s*:`),
	regexp.MustCompile(`(?i)^(?:\*\*)?(?:refined|improved|revised) prompt(?:\*\*)?\s*:(?:\*\*)?`),
}

func removePreamble(text string) string {
	courtesy := preamblePatterns[0]
	for _, re := range preamblePatterns[1:] {
		candidate := courtesy.ReplaceAllString(text, "")
		if loc := re.FindStringIndex(candidate); loc != nil {
			return strings.TrimSpace(candidate[loc[1]:])
		}
	}
	return text
}

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*\\n(.*)\\n```$")

func removeFence(text string) string {
	if m := fenceRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return text
}

// removeQuoteWrapping strips one matching pair of outer quotes:
//
//	"…"  '…'  «…»  “…”  ‘…’
func removeQuoteWrapping(text string) string {
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
