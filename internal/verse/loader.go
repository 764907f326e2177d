package verse

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/ulikunitz/xz"

	"github.com/at-ishikawa/bibleclock/internal/bible"
)

var (
	//go:embed data/kjv_sample.json
	kjvSample []byte
	//go:embed data/amplified_sample.json
	amplifiedSample []byte
)

// LoadReport summarizes one dataset load.
type LoadReport struct {
	Source      string
	Translation Translation
	Loaded      int
	Skipped     []string
}

// LoadFile loads a dataset by extension: .json, .xml (OSIS), either optionally
// compressed with xz.
func (s *Store) LoadFile(path string, translation Translation) (LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return LoadReport{}, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var reader io.Reader = f
	name := strings.ToLower(filepath.Base(path))
	if strings.HasSuffix(name, ".xz") {
		xr, err := xz.NewReader(f)
		if err != nil {
			return LoadReport{}, fmt.Errorf("xz.NewReader(%s) > %w", path, err)
		}
		reader = xr
		name = strings.TrimSuffix(name, ".xz")
	}

	switch filepath.Ext(name) {
	case ".json":
		return s.LoadJSON(reader, translation, path)
	case ".xml", ".osis":
		return s.LoadOSIS(reader, translation, path)
	default:
		return LoadReport{}, fmt.Errorf("unsupported dataset format: %s", path)
	}
}

// LoadJSON reads an object of "Book C:V" keys to verse text.
func (s *Store) LoadJSON(r io.Reader, translation Translation, source string) (LoadReport, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return LoadReport{}, fmt.Errorf("json.Decode(%s) > %w", source, err)
	}

	report := LoadReport{Source: source, Translation: translation}
	for key, text := range raw {
		s.putParsed(&report, key, text)
	}
	return report, nil
}

// LoadOSIS reads <verse osisID="Gen.1.1"> elements of an OSIS document.
func (s *Store) LoadOSIS(r io.Reader, translation Translation, source string) (LoadReport, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return LoadReport{}, fmt.Errorf("xmlquery.Parse(%s) > %w", source, err)
	}
	nodes, err := xmlquery.QueryAll(root, "//verse[@osisID]")
	if err != nil {
		return LoadReport{}, fmt.Errorf("xmlquery.QueryAll(%s) > %w", source, err)
	}

	report := LoadReport{Source: source, Translation: translation}
	for _, node := range nodes {
		id := strings.Fields(node.SelectAttr("osisID"))
		if len(id) == 0 {
			continue
		}
		s.putParsed(&report, id[0], node.InnerText())
	}
	return report, nil
}

func (s *Store) putParsed(report *LoadReport, key, text string) {
	ref, err := bible.ParseReference(key)
	text = strings.Join(strings.Fields(text), " ")
	if err != nil || ref.IsSummary() || ref.IsRange() || text == "" {
		report.Skipped = append(report.Skipped, key)
		return
	}
	s.Put(ref, report.Translation, text)
	report.Loaded++
}

// LoadEmbedded loads the bundled sample of a translation. The Amplified
// sample is sparse; verses outside it show KJV text only.
func (s *Store) LoadEmbedded(translation Translation) (LoadReport, error) {
	switch translation {
	case KJV:
		return s.LoadJSON(bytes.NewReader(kjvSample), KJV, "embedded:kjv_sample.json")
	case Amplified:
		return s.LoadJSON(bytes.NewReader(amplifiedSample), Amplified, "embedded:amplified_sample.json")
	default:
		return LoadReport{}, fmt.Errorf("no embedded dataset for translation %q", translation)
	}
}

// InstallPath is where an installed KJV dataset lives, next to the user
// config file.
func InstallPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("os.UserHomeDir() > %w", err)
	}
	return filepath.Join(home, ".config", "bibleclock", "kjv.json.xz"), nil
}

// DefaultKJVPaths lists where a full KJV dataset is looked for when no path
// is configured, in order.
func DefaultKJVPaths() []string {
	paths := []string{
		filepath.Join("data", "kjv.json.xz"),
		filepath.Join("data", "kjv.json"),
	}
	if path, err := InstallPath(); err == nil {
		paths = append(paths, path)
	}
	return paths
}

// FindDataset returns the first path that exists as a regular file.
func FindDataset(paths []string) (string, bool) {
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// Open builds a store from the configured datasets. An empty KJV path uses
// the first of DefaultKJVPaths that exists and the bundled sample after
// that; an empty Amplified path loads the bundled Amplified sample.
func Open(kjvPath, amplifiedPath string) (*Store, []LoadReport, error) {
	return openWith(kjvPath, amplifiedPath, DefaultKJVPaths())
}

func openWith(kjvPath, amplifiedPath string, searchPaths []string) (*Store, []LoadReport, error) {
	store := NewStore()
	var reports []LoadReport

	if kjvPath == "" {
		if found, ok := FindDataset(searchPaths); ok {
			kjvPath = found
		}
	}
	var report LoadReport
	var err error
	if kjvPath == "" {
		slog.Warn("no full KJV dataset found, using the bundled sample", "searched", searchPaths)
		report, err = store.LoadEmbedded(KJV)
	} else {
		report, err = store.LoadFile(kjvPath, KJV)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load KJV dataset > %w", err)
	}
	reports = append(reports, report)

	if amplifiedPath == "" {
		report, err = store.LoadEmbedded(Amplified)
	} else {
		report, err = store.LoadFile(amplifiedPath, Amplified)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load Amplified dataset > %w", err)
	}
	reports = append(reports, report)

	for _, r := range reports {
		slog.Debug("dataset loaded",
			"source", r.Source,
			"translation", r.Translation,
			"loaded", r.Loaded,
			"skipped", len(r.Skipped),
		)
	}
	return store, reports, nil
}

// WriteJSON writes a translation as an object of "Book C:V" keys, the
// format LoadJSON reads.
func (s *Store) WriteJSON(w io.Writer, translation Translation) error {
	raw := make(map[string]string, s.Len(translation))
	for _, ref := range s.References(translation) {
		text, _ := s.Lookup(ref, translation)
		raw[ref.String()] = text
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(raw); err != nil {
		return fmt.Errorf("json.Encode() > %w", err)
	}
	return nil
}

// WriteFile writes a translation to path as JSON, xz compressed when the
// path ends in .xz.
func (s *Store) WriteFile(path string, translation Translation) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("os.MkdirAll(%s) > %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	if !strings.HasSuffix(strings.ToLower(path), ".xz") {
		if err := s.WriteJSON(f, translation); err != nil {
			return err
		}
		return f.Close()
	}

	xw, err := xz.NewWriter(f)
	if err != nil {
		return fmt.Errorf("xz.NewWriter(%s) > %w", path, err)
	}
	if err := s.WriteJSON(xw, translation); err != nil {
		return err
	}
	if err := xw.Close(); err != nil {
		return fmt.Errorf("xz.Close(%s) > %w", path, err)
	}
	return f.Close()
}
