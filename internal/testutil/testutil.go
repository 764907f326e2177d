// Package testutil provides shared test helpers for config files and verse
// dataset fixtures.
package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

// SetupTestConfig creates a config file whose outputs, caches and state
// database all live under tmpDir. Returns the path to the config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()
	return writeConfig(t, tmpDir, baseConfig(tmpDir))
}

// SetupTestConfigWithAPI is SetupTestConfig with the verse API enabled
// against baseURL, e.g. an httptest server.
func SetupTestConfigWithAPI(t *testing.T, tmpDir string, baseURL string) string {
	t.Helper()
	content := baseConfig(tmpDir) + fmt.Sprintf(`api:
  enabled: true
  base_url: %s
  timeout: 2s
  max_retry_attempts: 0
  cache_directory: %s
`,
		baseURL,
		filepath.Join(tmpDir, "cache"),
	)
	return writeConfig(t, tmpDir, content)
}

// SetupTestConfigWithDatasets is SetupTestConfig with dataset paths set.
// Empty paths are left out so the embedded sample is used.
func SetupTestConfigWithDatasets(t *testing.T, tmpDir, kjvPath, amplifiedPath string) string {
	t.Helper()
	var data []string
	if kjvPath != "" {
		data = append(data, "  kjv_path: "+kjvPath)
	}
	if amplifiedPath != "" {
		data = append(data, "  amplified_path: "+amplifiedPath)
	}
	content := baseConfig(tmpDir)
	if len(data) > 0 {
		content += "data:\n" + strings.Join(data, "\n") + "\n"
	}
	return writeConfig(t, tmpDir, content)
}

func baseConfig(tmpDir string) string {
	return fmt.Sprintf(`clock:
  mode: clock
  version: kjv_only
  interval: 10ms
  seed: 1
display:
  output_directory: %s
  keep: 3
state:
  driver: sqlite
  dsn: %s
`,
		filepath.Join(tmpDir, "display"),
		filepath.Join(tmpDir, "bibleclock.db"),
	)
}

func writeConfig(t *testing.T, tmpDir, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "display"), 0755))
	configPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

// WriteJSONDataset writes verses keyed by "Book C:V" and returns the path.
// A name ending in .xz is compressed.
func WriteJSONDataset(t *testing.T, dir, name string, verses map[string]string) string {
	t.Helper()

	data, err := json.MarshalIndent(verses, "", "  ")
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()

	if !strings.HasSuffix(name, ".xz") {
		_, err = f.Write(data)
		require.NoError(t, err)
		return path
	}

	w, err := xz.NewWriter(f)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return path
}

// WriteOSISDataset writes verses keyed by OSIS IDs such as "John.3.16" as an
// OSIS XML document and returns the path.
func WriteOSISDataset(t *testing.T, dir, name string, verses map[string]string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<osis><osisText><div type="bookGroup">` + "\n")
	for id, text := range verses {
		fmt.Fprintf(&b, "<verse osisID=%q>%s</verse>\n", id, text)
	}
	b.WriteString("</div></osisText></osis>\n")

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0644))
	return path
}
