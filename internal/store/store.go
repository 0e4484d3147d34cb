package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
	_ "modernc.org/sqlite"

	"github.com/valpere/promptlight/internal/templates"
)

// MaxRecentPrompts caps the recent prompt history.
const MaxRecentPrompts = 10

// Store is the SQLite-backed prompt library: recent prompts, favorite
// templates and user-defined templates.
type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recent_prompts (
		text TEXT PRIMARY KEY,
		used_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS favorites (
		template_id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS custom_templates (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		template TEXT NOT NULL,
		category TEXT NOT NULL DEFAULT 'custom',
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_recent_used ON recent_prompts(used_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecentPrompt is one entry of the prompt history.
type RecentPrompt struct {
	Text   string
	UsedAt time.Time
}

// AddRecentPrompt moves text to the front of the history, dropping the
// oldest entries beyond MaxRecentPrompts.
func (s *Store) AddRecentPrompt(ctx context.Context, text string) error {
	text = normalizeText(text)
	if text == "" {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO recent_prompts (text, used_at) VALUES (?, ?)`,
		text, time.Now().UnixNano()); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM recent_prompts WHERE rowid NOT IN (
			SELECT rowid FROM recent_prompts ORDER BY used_at DESC, rowid DESC LIMIT ?
		)`, MaxRecentPrompts); err != nil {
		return err
	}

	return tx.Commit()
}

// RecentPrompts returns the history, most recent first.
func (s *Store) RecentPrompts(ctx context.Context) ([]RecentPrompt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT text, used_at FROM recent_prompts ORDER BY used_at DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RecentPrompt
	for rows.Next() {
		var p RecentPrompt
		var usedAt int64
		if err := rows.Scan(&p.Text, &usedAt); err != nil {
			return nil, err
		}
		p.UsedAt = time.Unix(0, usedAt)
		results = append(results, p)
	}

	return results, rows.Err()
}

// ClearRecentPrompts removes the whole history.
func (s *Store) ClearRecentPrompts(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM recent_prompts`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ToggleFavorite flips the favorite mark of a template and reports the new
// value.
func (s *Store) ToggleFavorite(ctx context.Context, templateID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE template_id = ?`, templateID)
	if err != nil {
		return false, err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO favorites (template_id, created_at) VALUES (?, ?)`,
		templateID, time.Now().UnixNano())
	if err != nil {
		return false, err
	}
	return true, nil
}

// Favorites returns favorite template IDs in the order they were marked.
func (s *Store) Favorites(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT template_id FROM favorites ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddCustomTemplate stores t under a fresh ID and returns the stored value.
// The category is always custom.
func (s *Store) AddCustomTemplate(ctx context.Context, t templates.Template) (templates.Template, error) {
	if strings.TrimSpace(t.Title) == "" {
		return templates.Template{}, fmt.Errorf("template title is required")
	}
	if strings.TrimSpace(t.Template) == "" {
		return templates.Template{}, fmt.Errorf("template body is required")
	}

	t.ID = "custom-" + uuid.NewString()
	t.Category = templates.CategoryCustom
	t.IsFavorite = false

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO custom_templates (id, title, description, template, category, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.Description, t.Template, string(t.Category), time.Now().UnixNano())
	if err != nil {
		return templates.Template{}, err
	}
	return t, nil
}

// RemoveCustomTemplate deletes a custom template and its favorite mark.
func (s *Store) RemoveCustomTemplate(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM custom_templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("custom template %q not found", id)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM favorites WHERE template_id = ?`, id); err != nil {
		return err
	}
	return tx.Commit()
}

// CustomTemplates returns user-defined templates, oldest first.
func (s *Store) CustomTemplates(ctx context.Context) ([]templates.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, template, category FROM custom_templates ORDER BY created_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []templates.Template
	for rows.Next() {
		var t templates.Template
		var category string
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Template, &category); err != nil {
			return nil, err
		}
		t.Category = templates.Category(category)
		results = append(results, t)
	}
	return results, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

// normalizeText trims whitespace and applies Unicode NFC normalization so
// visually identical prompts share one history entry.
func normalizeText(text string) string {
	return norm.NFC.String(strings.TrimSpace(text))
}
