package templates

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_Catalog(t *testing.T) {
	list := Builtin()
	require.Len(t, list, 20)

	counts := map[Category]int{}
	ids := map[string]bool{}
	for _, tpl := range list {
		counts[tpl.Category]++
		assert.False(t, ids[tpl.ID], "duplicate id %s", tpl.ID)
		ids[tpl.ID] = true
	}
	assert.Equal(t, 7, counts[CategoryCoding])
	assert.Equal(t, 7, counts[CategoryWriting])
	assert.Equal(t, 6, counts[CategoryAnalysis])

	list[0].Title = "changed"
	assert.NotEqual(t, "changed", Builtin()[0].Title, "Builtin must return a copy")
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category Category
		want     int
	}{
		{"everything", "", CategoryAll, 20},
		{"empty category means all", "", "", 20},
		{"coding only", "", CategoryCoding, 7},
		{"title match", "debug", CategoryAll, 1},
		{"case insensitive", "DEBUG", CategoryAll, 1},
		{"body match", "{framework}", CategoryAll, 1},
		{"search within category", "code", CategoryWriting, 0},
		{"whitespace search", "   ", CategoryAnalysis, 6},
		{"no match", "zebra", CategoryAll, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(Builtin(), tt.search, tt.category)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("Coding")
	require.NoError(t, err)
	assert.Equal(t, CategoryCoding, c)

	c, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, CategoryAll, c)

	_, err = ParseCategory("poetry")
	assert.Error(t, err)
}

func TestPlaceholdersAndFill(t *testing.T) {
	body := "Convert this {source_language} code to {target_language}:\n{code}\nFollow {target_language} practice."

	assert.Equal(t, []string{"source_language", "target_language", "code"}, Placeholders(body))

	filled := Fill(body, map[string]string{"source_language": "Rust", "target_language": "Go"})
	assert.Equal(t, "Convert this Rust code to Go:\n{code}\nFollow Go practice.", filled)
}

type fakeSource struct {
	custom    []Template
	favorites []string
	err       error
}

func (f *fakeSource) CustomTemplates(context.Context) ([]Template, error) { return f.custom, f.err }
func (f *fakeSource) Favorites(context.Context) ([]string, error)        { return f.favorites, nil }

func TestLibrary_List(t *testing.T) {
	src := &fakeSource{
		custom:    []Template{{ID: "mine", Title: "Standup notes", Template: "Summarize {notes}", Category: CategoryCustom}},
		favorites: []string{"write-email", "mine"},
	}
	lib := NewLibrary(src)

	all, err := lib.List(context.Background(), "", CategoryAll)
	require.NoError(t, err)
	require.Len(t, all, 21)
	assert.True(t, all[0].IsFavorite)
	assert.True(t, all[1].IsFavorite)
	assert.False(t, all[2].IsFavorite)

	custom, err := lib.List(context.Background(), "standup", CategoryCustom)
	require.NoError(t, err)
	require.Len(t, custom, 1)
	assert.Equal(t, "mine", custom[0].ID)

	tpl, ok, err := lib.Get(context.Background(), "write-email")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, tpl.IsFavorite)

	_, ok, err = lib.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLibrary_SourceError(t *testing.T) {
	lib := NewLibrary(&fakeSource{err: errors.New("db locked")})

	_, err := lib.List(context.Background(), "", CategoryAll)
	assert.ErrorContains(t, err, "db locked")
}

func TestLibrary_NilSource(t *testing.T) {
	all, err := NewLibrary(nil).List(context.Background(), "", CategoryAll)
	require.NoError(t, err)
	assert.Len(t, all, 20)
}

func TestFuzzy(t *testing.T) {
	got := Fuzzy(Builtin(), "dbg", CategoryAll)
	require.Len(t, got, 1)
	assert.Equal(t, "Debug Code", got[0].Title)

	assert.Empty(t, Fuzzy(Builtin(), "dbg", CategoryWriting))
	assert.Len(t, Fuzzy(Builtin(), "  ", CategoryAnalysis), 6)
	assert.Empty(t, Fuzzy(Builtin(), "zzzz", CategoryAll))
}

func TestLibrary_Search(t *testing.T) {
	lib := NewLibrary(&fakeSource{
		custom: []Template{{ID: "mine", Title: "Standup notes", Template: "Summarize {notes}", Category: CategoryCustom}},
	})

	got, err := lib.Search(context.Background(), "stnd", CategoryAll)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "mine", got[0].ID)
}
