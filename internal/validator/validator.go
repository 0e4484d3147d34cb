// Package validator flags refinements that are probably not what the user
// wanted: empty output, the prompt echoed back unchanged, or an answer in a
// different language from the prompt.
package validator

import (
	"fmt"
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"
)

// minDetectLength is the rune count below which language detection is
// unreliable and skipped.
const minDetectLength = 20

// languages bounds the detector to the languages users write prompts in
// most often. Building it from all languages costs seconds and hundreds of
// megabytes. Low accuracy mode is not used: it misreads plain English
// sentences as French.
var languages = []lingua.Language{
	lingua.English, lingua.Ukrainian, lingua.Russian, lingua.German,
	lingua.French, lingua.Spanish, lingua.Portuguese, lingua.Italian,
	lingua.Polish, lingua.Dutch, lingua.Turkish, lingua.Japanese,
	lingua.Chinese, lingua.Korean,
}

// Validator is safe for concurrent use. The detector is built on first use.
type Validator struct {
	once sync.Once
	det  lingua.LanguageDetector
}

func New() *Validator {
	return &Validator{}
}

func (v *Validator) detector() lingua.LanguageDetector {
	v.once.Do(func() {
		v.det = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})
	return v.det
}

// DetectISO returns the ISO 639-1 code of text, or false when text is too
// short or ambiguous.
func (v *Validator) DetectISO(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if len([]rune(text)) < minDetectLength {
		return "", false
	}
	lang, ok := v.detector().DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}

// Check returns one warning per problem found in refined. An empty result
// means the refinement looks fine.
func (v *Validator) Check(prompt, refined string) []string {
	out := strings.TrimSpace(refined)
	if out == "" {
		return []string{"refinement is empty"}
	}

	var warnings []string
	if strings.EqualFold(out, strings.TrimSpace(prompt)) {
		warnings = append(warnings, "refinement is identical to the prompt")
	}

	want, ok := v.DetectISO(prompt)
	if !ok {
		return warnings
	}
	got, ok := v.DetectISO(out)
	if ok && got != want {
		warnings = append(warnings, fmt.Sprintf("prompt is in %s but refinement is in %s", want, got))
	}
	return warnings
}
