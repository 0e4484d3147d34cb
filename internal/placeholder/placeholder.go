// Package placeholder shields parts of a rough prompt that a refinement
// must not rewrite: fenced code blocks, inline code and template fields
// such as {code}. They are swapped for numbered markers ([PH0], [PH1], ...)
// before the prompt is sent and put back afterwards.
package placeholder

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	reFencedCode = regexp.MustCompile("(?s)```.*?```")
	reInlineCode = regexp.MustCompile("`[^`\n]+`")
	reField      = regexp.MustCompile(`\{[a-z0-9_]+\}`)
	reMarker     = regexp.MustCompile(`\[PH(\d+)\]`)
)

// Protect replaces code and template fields with markers in order of
// appearance and returns the captured originals.
func Protect(text string) (string, []string) {
	var originals []string
	replace := func(match string) string {
		originals = append(originals, match)
		return fmt.Sprintf("[PH%d]", len(originals)-1)
	}

	// Fenced blocks first so their backticks are not read as inline code.
	text = reFencedCode.ReplaceAllStringFunc(text, replace)
	text = reInlineCode.ReplaceAllStringFunc(text, replace)
	text = reField.ReplaceAllStringFunc(text, replace)
	return text, originals
}

// Restore puts originals back. Unknown indices are left as they are.
func Restore(text string, originals []string) string {
	return reMarker.ReplaceAllStringFunc(text, func(m string) string {
		idx, err := strconv.Atoi(reMarker.FindStringSubmatch(m)[1])
		if err != nil || idx >= len(originals) {
			return m
		}
		return originals[idx]
	})
}

// Hint is appended to a protected prompt so the model keeps the markers.
func Hint() string {
	return "Keep every [PHn] marker exactly as written; each stands for content that must not change."
}

// Missing lists the marker indices that did not survive in text.
func Missing(text string, originals []string) []int {
	var missing []int
	for i := range originals {
		if !strings.Contains(text, fmt.Sprintf("[PH%d]", i)) {
			missing = append(missing, i)
		}
	}
	return missing
}
