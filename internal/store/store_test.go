package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/valpere/promptlight/internal/templates"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_New_InvalidPath(t *testing.T) {
	_, err := New("/nonexistent/path/test.db")
	if err == nil {
		t.Error("expected error for invalid path")
	}
}

func TestStore_RecentPrompts_MostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, p := range []string{"first", "second", "third"} {
		if err := s.AddRecentPrompt(ctx, p); err != nil {
			t.Fatalf("AddRecentPrompt failed: %v", err)
		}
	}

	got, err := s.RecentPrompts(ctx)
	if err != nil {
		t.Fatalf("RecentPrompts failed: %v", err)
	}
	want := []string{"third", "second", "first"}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Text != want[i] {
			t.Errorf("entry %d: got %q, want %q", i, got[i].Text, want[i])
		}
	}
}

func TestStore_RecentPrompts_Dedup(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddRecentPrompt(ctx, "alpha")
	s.AddRecentPrompt(ctx, "beta")
	s.AddRecentPrompt(ctx, "  alpha  ")

	got, err := s.RecentPrompts(ctx)
	if err != nil {
		t.Fatalf("RecentPrompts failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Text != "alpha" {
		t.Errorf("expected re-used prompt first, got %q", got[0].Text)
	}
}

func TestStore_RecentPrompts_UnicodeNormalization(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddRecentPrompt(ctx, "caf\u00e9")
	s.AddRecentPrompt(ctx, "cafe\u0301")

	got, _ := s.RecentPrompts(ctx)
	if len(got) != 1 {
		t.Errorf("expected NFC-equal prompts to share one entry, got %d", len(got))
	}
}

func TestStore_RecentPrompts_Capped(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < MaxRecentPrompts+5; i++ {
		if err := s.AddRecentPrompt(ctx, fmt.Sprintf("prompt %d", i)); err != nil {
			t.Fatalf("AddRecentPrompt failed: %v", err)
		}
	}

	got, err := s.RecentPrompts(ctx)
	if err != nil {
		t.Fatalf("RecentPrompts failed: %v", err)
	}
	if len(got) != MaxRecentPrompts {
		t.Fatalf("expected %d entries, got %d", MaxRecentPrompts, len(got))
	}
	if got[0].Text != "prompt 14" {
		t.Errorf("expected newest first, got %q", got[0].Text)
	}
	if got[len(got)-1].Text != "prompt 5" {
		t.Errorf("expected oldest kept to be prompt 5, got %q", got[len(got)-1].Text)
	}
}

func TestStore_RecentPrompts_IgnoresBlank(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.AddRecentPrompt(ctx, "   "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ := s.RecentPrompts(ctx)
	if len(got) != 0 {
		t.Errorf("expected no entries, got %d", len(got))
	}
}

func TestStore_ClearRecentPrompts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddRecentPrompt(ctx, "one")
	s.AddRecentPrompt(ctx, "two")

	n, err := s.ClearRecentPrompts(ctx)
	if err != nil {
		t.Fatalf("ClearRecentPrompts failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 deleted, got %d", n)
	}
}

func TestStore_ToggleFavorite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	on, err := s.ToggleFavorite(ctx, "code-debug")
	if err != nil || !on {
		t.Fatalf("expected favorite on, got %v, %v", on, err)
	}
	s.ToggleFavorite(ctx, "write-email")

	ids, err := s.Favorites(ctx)
	if err != nil {
		t.Fatalf("Favorites failed: %v", err)
	}
	if len(ids) != 2 || ids[0] != "code-debug" || ids[1] != "write-email" {
		t.Errorf("unexpected favorites %v", ids)
	}

	on, err = s.ToggleFavorite(ctx, "code-debug")
	if err != nil || on {
		t.Fatalf("expected favorite off, got %v, %v", on, err)
	}
	ids, _ = s.Favorites(ctx)
	if len(ids) != 1 {
		t.Errorf("expected 1 favorite, got %v", ids)
	}
}

func TestStore_CustomTemplates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	added, err := s.AddCustomTemplate(ctx, templates.Template{
		Title:    "Standup",
		Template: "Summarize {notes} for standup",
		Category: templates.CategoryCoding,
	})
	if err != nil {
		t.Fatalf("AddCustomTemplate failed: %v", err)
	}
	if added.ID == "" {
		t.Fatal("expected generated ID")
	}
	if added.Category != templates.CategoryCustom {
		t.Errorf("expected custom category, got %q", added.Category)
	}

	list, err := s.CustomTemplates(ctx)
	if err != nil {
		t.Fatalf("CustomTemplates failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != added.ID || list[0].Title != "Standup" {
		t.Fatalf("unexpected list %+v", list)
	}

	s.ToggleFavorite(ctx, added.ID)
	if err := s.RemoveCustomTemplate(ctx, added.ID); err != nil {
		t.Fatalf("RemoveCustomTemplate failed: %v", err)
	}
	list, _ = s.CustomTemplates(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}
	ids, _ := s.Favorites(ctx)
	if len(ids) != 0 {
		t.Errorf("expected favorite mark removed, got %v", ids)
	}
}

func TestStore_CustomTemplates_Validation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.AddCustomTemplate(ctx, templates.Template{Template: "body"}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := s.AddCustomTemplate(ctx, templates.Template{Title: "t"}); err == nil {
		t.Error("expected error for missing body")
	}
	if err := s.RemoveCustomTemplate(ctx, "nope"); err == nil {
		t.Error("expected error removing unknown template")
	}
}

func TestStore_ImplementsTemplateSource(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.AddCustomTemplate(ctx, templates.Template{Title: "Mine", Template: "do {thing}"})
	s.ToggleFavorite(ctx, "analyze-data")

	lib := templates.NewLibrary(s)
	all, err := lib.List(ctx, "", templates.CategoryAll)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 21 {
		t.Errorf("expected 21 templates, got %d", len(all))
	}
	if all[0].ID != "analyze-data" || !all[0].IsFavorite {
		t.Errorf("expected favorite first, got %+v", all[0])
	}
}
