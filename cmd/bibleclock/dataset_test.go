package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/testutil"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

func TestDatasetInstallCommand(t *testing.T) {
	verses := map[string]string{
		"Psalms 23:1": "The LORD is my shepherd; I shall not want.",
		"John 3:16":   "For God so loved the world,",
		"not a key":   "ignored",
	}

	tests := []struct {
		name         string
		output       func(dir string) string
		wantPath     func(dir string) string
		wantContains []string
	}{
		{
			name:         "explicit output",
			output:       func(dir string) string { return filepath.Join(dir, "out", "kjv.json.xz") },
			wantPath:     func(dir string) string { return filepath.Join(dir, "out", "kjv.json.xz") },
			wantContains: []string{"installed 2 verses", "skipped 1 unparsable entries", "31100 of 31102 canonical verses are missing"},
		},
		{
			name:         "default output under the config directory",
			output:       func(string) string { return "" },
			wantPath:     func(dir string) string { return filepath.Join(dir, ".config", "bibleclock", "kjv.json.xz") },
			wantContains: []string{"installed 2 verses"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Setenv("HOME", dir)
			src := testutil.WriteJSONDataset(t, dir, "source.json", verses)

			args := []string{src}
			if output := tt.output(dir); output != "" {
				args = append(args, "--output", output)
			}
			out, err := execute(t, newDatasetInstallCommand(), args...)
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, out, want)
			}

			path := tt.wantPath(dir)
			assert.Contains(t, out, path)
			store, reports, err := verse.Open(path, "")
			require.NoError(t, err)
			assert.Equal(t, 2, reports[0].Loaded)
			text, ok := store.Lookup(bible.NewReference("Psalms", 23, 1), verse.KJV)
			require.True(t, ok)
			assert.Equal(t, "The LORD is my shepherd; I shall not want.", text)
		})
	}
}

func TestDatasetInstallCommand_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  func(dir string) string
		wantErr string
	}{
		{
			name:    "missing source",
			source:  func(dir string) string { return filepath.Join(dir, "missing.json") },
			wantErr: "store.LoadFile()",
		},
		{
			name: "no usable verses",
			source: func(dir string) string {
				return testutil.WriteJSONDataset(t, dir, "empty.json", map[string]string{"nonsense": "x"})
			},
			wantErr: "no verses loaded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := execute(t, newDatasetInstallCommand(), tt.source(dir), "--output", filepath.Join(dir, "kjv.json.xz"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.NoFileExists(t, filepath.Join(dir, "kjv.json.xz"))
		})
	}
}
