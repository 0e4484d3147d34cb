// Package templates holds the prompt template catalog and the filtering used
// by the UI search box.
package templates

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

type Category string

const (
	CategoryCoding   Category = "coding"
	CategoryWriting  Category = "writing"
	CategoryAnalysis Category = "analysis"
	CategoryCustom   Category = "custom"
	// CategoryAll disables category filtering.
	CategoryAll Category = "all"
)

// ParseCategory accepts the category names case-insensitively.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryCoding, CategoryWriting, CategoryAnalysis, CategoryCustom:
		return c, nil
	default:
		return "", fmt.Errorf("unknown category %q", s)
	}
}

type Template struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Template    string   `json:"template"`
	Category    Category `json:"category"`
	IsFavorite  bool     `json:"isFavorite,omitempty"`
}

// Builtin returns a copy of the shipped catalog.
func Builtin() []Template {
	out := make([]Template, len(builtin))
	copy(out, builtin)
	return out
}

// Filter keeps templates in category whose title, description or body
// contains search, case-insensitively. An empty search matches everything.
func Filter(list []Template, search string, category Category) []Template {
	query := strings.ToLower(strings.TrimSpace(search))

	out := make([]Template, 0, len(list))
	for _, t := range list {
		if category != "" && category != CategoryAll && t.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) &&
			!strings.Contains(strings.ToLower(t.Template), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// titles adapts a template list to fuzzy.Source.
type titles []Template

func (t titles) String(i int) string { return t[i].Title }
func (t titles) Len() int            { return len(t) }

// Fuzzy ranks templates in category by how well their title fuzzy-matches
// query, best first. An empty query keeps the input order.
func Fuzzy(list []Template, query string, category Category) []Template {
	list = Filter(list, "", category)
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}

	matches := fuzzy.FindFrom(query, titles(list))
	out := make([]Template, len(matches))
	for i, m := range matches {
		out[i] = list[m.Index]
	}
	return out
}

var placeholderRe = regexp.MustCompile(`\{([a-z0-9_]+)\}`)

// Placeholders lists the distinct {name} fields of a template body in order
// of first appearance.
func Placeholders(body string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(body, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// Fill substitutes known placeholders and leaves unknown ones untouched.
func Fill(body string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(body, func(m string) string {
		if v, ok := values[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

// Source provides user-defined templates and favorite marks.
type Source interface {
	CustomTemplates(ctx context.Context) ([]Template, error)
	Favorites(ctx context.Context) ([]string, error)
}

// Library merges the builtin catalog with a Source.
type Library struct {
	src Source
}

func NewLibrary(src Source) *Library {
	return &Library{src: src}
}

// List returns builtin and custom templates, favorites first, filtered.
func (l *Library) List(ctx context.Context, search string, category Category) ([]Template, error) {
	all := Builtin()
	favorites := map[string]bool{}

	if l.src != nil {
		custom, err := l.src.CustomTemplates(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load custom templates: %w", err)
		}
		all = append(all, custom...)

		ids, err := l.src.Favorites(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load favorites: %w", err)
		}
		for _, id := range ids {
			favorites[id] = true
		}
	}

	for i := range all {
		all[i].IsFavorite = favorites[all[i].ID]
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].IsFavorite && !all[j].IsFavorite
	})

	return Filter(all, search, category), nil
}

// Search is List with fuzzy title ranking instead of substring matching.
func (l *Library) Search(ctx context.Context, query string, category Category) ([]Template, error) {
	all, err := l.List(ctx, "", category)
	if err != nil {
		return nil, err
	}
	return Fuzzy(all, query, category), nil
}

// Get looks a template up by ID.
func (l *Library) Get(ctx context.Context, id string) (Template, bool, error) {
	all, err := l.List(ctx, "", CategoryAll)
	if err != nil {
		return Template{}, false, err
	}
	for _, t := range all {
		if t.ID == id {
			return t, true, nil
		}
	}
	return Template{}, false, nil
}
