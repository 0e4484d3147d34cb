package placeholder_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/valpere/promptlight/internal/placeholder"
)

func TestProtect_NoMarkup(t *testing.T) {
	text := "Make this email friendlier"
	got, originals := placeholder.Protect(text)
	if got != text {
		t.Errorf("expected unchanged text, got %q", got)
	}
	if len(originals) != 0 {
		t.Errorf("expected 0 originals, got %d", len(originals))
	}
}

func TestProtect_FencedCode(t *testing.T) {
	text := "Why does this fail?\n```go\nfmt.Println(`hi`)\n```\nThanks"
	got, originals := placeholder.Protect(text)

	if len(originals) != 1 {
		t.Fatalf("expected 1 original for fenced block, got %d: %v", len(originals), originals)
	}
	if got != "Why does this fail?\n[PH0]\nThanks" {
		t.Errorf("unexpected protected text %q", got)
	}
}

func TestProtect_InlineCodeAndFields(t *testing.T) {
	text := "Explain `defer` in {language} for {audience}"
	got, originals := placeholder.Protect(text)

	want := []string{"`defer`", "{language}", "{audience}"}
	if !reflect.DeepEqual(originals, want) {
		t.Errorf("originals = %v, want %v", originals, want)
	}
	if got != "Explain [PH0] in [PH1] for [PH2]" {
		t.Errorf("unexpected protected text %q", got)
	}
}

func TestProtect_IgnoresNonFieldBraces(t *testing.T) {
	text := `Return JSON like {"a": 1}`
	got, originals := placeholder.Protect(text)
	if got != text || len(originals) != 0 {
		t.Errorf("expected JSON braces untouched, got %q %v", got, originals)
	}
}

func TestRestore_RoundTrip(t *testing.T) {
	text := "Review {code} and compare with `main()`:\n```\nx := 1\n```"
	protected, originals := placeholder.Protect(text)

	if got := placeholder.Restore(protected, originals); got != text {
		t.Errorf("round trip = %q, want %q", got, text)
	}
}

func TestRestore_Reordered(t *testing.T) {
	originals := []string{"{a}", "{b}"}
	got := placeholder.Restore("Use [PH1] then [PH0]", originals)
	if got != "Use {b} then {a}" {
		t.Errorf("unexpected restore %q", got)
	}
}

func TestRestore_UnknownIndex(t *testing.T) {
	got := placeholder.Restore("Keep [PH7]", []string{"{a}"})
	if got != "Keep [PH7]" {
		t.Errorf("expected unknown marker kept, got %q", got)
	}
}

func TestMissing(t *testing.T) {
	originals := []string{"{a}", "{b}", "{c}"}
	got := placeholder.Missing("Only [PH0] and [PH2] survived", originals)
	if !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("Missing = %v, want [1]", got)
	}
	if got := placeholder.Missing("[PH0]", originals[:1]); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestHint(t *testing.T) {
	if !strings.Contains(placeholder.Hint(), "[PHn]") {
		t.Error("hint should mention the marker format")
	}
}
