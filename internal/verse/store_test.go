package verse

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"

	"github.com/at-ishikawa/bibleclock/internal/bible"
)

func TestStore_Lookup(t *testing.T) {
	store := NewStore()
	store.Put(bible.NewReference("Luke", 2, 10), KJV, "Fear not.")
	store.Put(bible.NewReference("Luke", 2, 11), KJV, "A Saviour.")
	store.Put(bible.NewReference("John", 3, 16), Amplified, "Amplified text.")

	tests := []struct {
		name        string
		ref         bible.Reference
		translation Translation
		want        string
		found       bool
	}{
		{name: "single verse", ref: bible.NewReference("Luke", 2, 10), translation: KJV, want: "Fear not.", found: true},
		{
			name:        "passage joins verses",
			ref:         bible.Reference{Book: "Luke", Chapter: 2, Verse: 10, EndVerse: 11},
			translation: KJV,
			want:        "Fear not. A Saviour.",
			found:       true,
		},
		{name: "passage with a missing verse", ref: bible.Reference{Book: "Luke", Chapter: 2, Verse: 10, EndVerse: 12}, translation: KJV},
		{name: "other translation", ref: bible.NewReference("John", 3, 16), translation: Amplified, want: "Amplified text.", found: true},
		{name: "missing in translation", ref: bible.NewReference("John", 3, 16), translation: KJV},
		{name: "summary is never stored", ref: bible.SummaryOf("John"), translation: KJV},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := store.Lookup(tt.ref, tt.translation)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, 2, store.Len(KJV))
	assert.Equal(t, 1, store.Len(Amplified))
}

func TestStore_Index(t *testing.T) {
	store := NewStore()
	store.Put(bible.NewReference("John", 3, 16), KJV, "x")
	store.Put(bible.NewReference("Genesis", 1, 1), KJV, "y")
	store.Put(bible.NewReference("Exodus", 1, 1), Amplified, "z")

	idx := store.Index()
	assert.Equal(t, []string{"Genesis", "John"}, idx.Books())
	assert.True(t, idx.HasVerse("John", 3, 16))
	assert.False(t, idx.HasVerse("Exodus", 1, 1))
	assert.Equal(t, 2, idx.Len())
}

func TestStore_LoadFile(t *testing.T) {
	const jsonData = `{"Genesis 1:1": "In the beginning  God created the heaven and the earth.", "Tobit 1:1": "skipped", "John 3:16": ""}`
	const osisData = `<?xml version="1.0" encoding="UTF-8"?>
<osis><osisText><div type="book" osisID="John"><chapter osisID="John.3">
<verse osisID="John.3.16">For God so loved the world,</verse>
<verse osisID="John.3.17">For God sent not his Son.</verse>
</chapter></div></osisText></osis>`

	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0644))
		return path
	}
	compress := func(data string) []byte {
		var sb strings.Builder
		w, err := xz.NewWriter(&sb)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
		require.NoError(t, w.Close())
		return []byte(sb.String())
	}

	tests := []struct {
		name        string
		path        string
		wantLoaded  int
		wantSkipped []string
		wantRef     bible.Reference
		wantText    string
		wantErr     bool
	}{
		{
			name:        "json",
			path:        write("kjv.json", []byte(jsonData)),
			wantLoaded:  1,
			wantSkipped: []string{"John 3:16", "Tobit 1:1"},
			wantRef:     bible.NewReference("Genesis", 1, 1),
			wantText:    "In the beginning God created the heaven and the earth.",
		},
		{
			name:        "xz compressed json",
			path:        write("kjv.json.xz", compress(jsonData)),
			wantLoaded:  1,
			wantSkipped: []string{"John 3:16", "Tobit 1:1"},
			wantRef:     bible.NewReference("Genesis", 1, 1),
			wantText:    "In the beginning God created the heaven and the earth.",
		},
		{
			name:       "osis xml",
			path:       write("kjv.xml", []byte(osisData)),
			wantLoaded: 2,
			wantRef:    bible.NewReference("John", 3, 16),
			wantText:   "For God so loved the world,",
		},
		{name: "unsupported extension", path: write("kjv.csv", []byte("a,b")), wantErr: true},
		{name: "broken json", path: write("broken.json", []byte("{")), wantErr: true},
		{name: "missing file", path: filepath.Join(dir, "missing.json"), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			report, err := store.LoadFile(tt.path, KJV)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLoaded, report.Loaded)
			assert.ElementsMatch(t, tt.wantSkipped, report.Skipped)

			got, ok := store.Lookup(tt.wantRef, KJV)
			require.True(t, ok)
			assert.Equal(t, tt.wantText, got)
		})
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	noDefaults := []string{filepath.Join(dir, "kjv.json.xz")}

	store, reports, err := openWith("", "", noDefaults)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "embedded:kjv_sample.json", reports[0].Source)
	assert.Empty(t, reports[0].Skipped)
	assert.Equal(t, reports[0].Loaded, store.Len(KJV))
	assert.Equal(t, "embedded:amplified_sample.json", reports[1].Source)
	assert.Empty(t, reports[1].Skipped)
	assert.Equal(t, 13, store.Len(Amplified))

	text, ok := store.Lookup(bible.NewReference("John", 3, 16), KJV)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "For God so loved the world"))
	text, ok = store.Lookup(bible.NewReference("John", 3, 16), Amplified)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(text, "For God so [greatly] loved"))

	_, _, err = openWith(filepath.Join(dir, "none.json"), "", noDefaults)
	assert.Error(t, err)
	_, _, err = openWith("", filepath.Join(dir, "none.json"), noDefaults)
	assert.Error(t, err)
}

func TestOpen_FindsDefaultDataset(t *testing.T) {
	dir := t.TempDir()
	full := NewStore()
	full.Put(bible.NewReference("Jude", 1, 1), KJV, "Jude, the servant of Jesus Christ.")
	path := filepath.Join(dir, "kjv.json.xz")
	require.NoError(t, full.WriteFile(path, KJV))

	store, reports, err := openWith("", "", []string{filepath.Join(dir, "missing.json"), path})
	require.NoError(t, err)
	assert.Equal(t, path, reports[0].Source)
	assert.Equal(t, 1, store.Len(KJV))
	_, ok := store.Lookup(bible.NewReference("John", 3, 16), KJV)
	assert.False(t, ok)
}

func TestFindDataset(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "kjv.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	tests := []struct {
		name   string
		paths  []string
		want   string
		wantOK bool
	}{
		{name: "first existing file", paths: []string{filepath.Join(dir, "a.json"), file}, want: file, wantOK: true},
		{name: "directory is skipped", paths: []string{dir}},
		{name: "nothing exists", paths: []string{filepath.Join(dir, "b.json")}},
		{name: "no paths"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindDataset(tt.paths)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_WriteFile(t *testing.T) {
	src := NewStore()
	src.Put(bible.NewReference("Psalms", 23, 1), KJV, "The LORD is my shepherd; I shall not want.")
	src.Put(bible.NewReference("1 Corinthians", 13, 4), KJV, "Charity suffereth long, and is kind;")
	src.Put(bible.NewReference("John", 3, 16), Amplified, "For God so [greatly] loved")

	for _, name := range []string{"kjv.json", "nested/kjv.json.xz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, src.WriteFile(path, KJV))

			dst := NewStore()
			report, err := dst.LoadFile(path, KJV)
			require.NoError(t, err)
			assert.Equal(t, 2, report.Loaded)
			assert.Empty(t, report.Skipped)
			assert.Equal(t, src.References(KJV), dst.References(KJV))
			assert.Zero(t, dst.Len(Amplified))
		})
	}
}

func TestMissing(t *testing.T) {
	store := NewStore()
	store.Put(bible.NewReference("Jude", 1, 1), KJV, "x")
	canon := bible.NewCanon([]bible.Book{{Name: "Jude", OSIS: "Jude", Verses: []int{3}}})

	count, missing := Missing(store, canon, 1)
	assert.Equal(t, 2, count)
	assert.Equal(t, []bible.Reference{bible.NewReference("Jude", 1, 2)}, missing)
}

func TestNotFoundError(t *testing.T) {
	err := error(&NotFoundError{Reference: bible.NewReference("John", 3, 16), Translation: KJV})
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "KJV text not found for John 3:16", err.Error())
}

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already clean", input: "Jesus wept.", want: "Jesus wept."},
		{name: "collapses whitespace", input: "  Jesus \n wept. ", want: "Jesus wept."},
		{name: "capitalizes", input: "saying, Where is he", want: "Saying, Where is he."},
		{name: "replaces trailing colon", input: "the heaven:", want: "The heaven."},
		{name: "keeps question mark", input: "whom shall I fear?", want: "Whom shall I fear?"},
		{name: "empty", input: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}
