package resolver

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/bibleclock/internal/bible"
)

//go:embed events.yaml
var defaultEventsYAML []byte

type Tier string

const (
	TierDate    Tier = "date"
	TierMonth   Tier = "month"
	TierSeason  Tier = "season"
	TierDefault Tier = "default"
)

type Season string

const (
	Winter Season = "winter"
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
)

// SeasonOf uses fixed quarter boundaries: Dec-Feb winter, Mar-May spring,
// Jun-Aug summer and Sep-Nov fall.
func SeasonOf(month time.Month) Season {
	switch month {
	case time.December, time.January, time.February:
		return Winter
	case time.March, time.April, time.May:
		return Spring
	case time.June, time.July, time.August:
		return Summer
	default:
		return Fall
	}
}

// DayEntry is one row of the day table.
type DayEntry struct {
	Label      string
	Tags       []string
	References []bible.Reference
}

type monthDay struct {
	month time.Month
	day   int
}

// DayTable is read-only once loaded.
type DayTable struct {
	dates    map[monthDay]DayEntry
	months   map[time.Month]DayEntry
	seasons  map[Season]DayEntry
	fallback DayEntry
}

// DayResolution is the outcome of a date lookup.
type DayResolution struct {
	Tier       Tier
	Label      string
	Tags       []string
	Candidates []bible.Reference
}

// ResolveDay walks the tiers date, month, season and default, and returns
// the whole list of the first entry that matches.
func (r *Resolver) ResolveDay(date time.Time) DayResolution {
	return r.days.Resolve(date)
}

func (t *DayTable) Resolve(date time.Time) DayResolution {
	if e, ok := t.dates[monthDay{month: date.Month(), day: date.Day()}]; ok {
		return newDayResolution(TierDate, e, e.Label)
	}
	if e, ok := t.months[date.Month()]; ok {
		label := e.Label
		if label == "" {
			label = fmt.Sprintf("%s %d", date.Month(), date.Day())
		}
		return newDayResolution(TierMonth, e, label)
	}
	if e, ok := t.seasons[SeasonOf(date.Month())]; ok {
		return newDayResolution(TierSeason, e, e.Label)
	}
	return newDayResolution(TierDefault, t.fallback, t.fallback.Label)
}

func newDayResolution(tier Tier, e DayEntry, label string) DayResolution {
	return DayResolution{
		Tier:       tier,
		Label:      label,
		Tags:       slices.Clone(e.Tags),
		Candidates: slices.Clone(e.References),
	}
}

// DayTableStats summarizes how much of the calendar has a dedicated entry.
type DayTableStats struct {
	Dates   int
	Months  int
	Seasons int
	// DatePercent is the share of the 366 calendar days with a date entry.
	DatePercent float64
}

func (t *DayTable) Stats() DayTableStats {
	return DayTableStats{
		Dates:       len(t.dates),
		Months:      len(t.months),
		Seasons:     len(t.seasons),
		DatePercent: percent(len(t.dates), 366),
	}
}

// References returns every reference in the table, entries in tier order.
func (t *DayTable) References() []bible.Reference {
	var refs []bible.Reference
	add := func(e DayEntry) {
		refs = append(refs, e.References...)
	}
	for month := time.January; month <= time.December; month++ {
		for day := 1; day <= 31; day++ {
			if e, ok := t.dates[monthDay{month: month, day: day}]; ok {
				add(e)
			}
		}
		if e, ok := t.months[month]; ok {
			add(e)
		}
	}
	for _, s := range []Season{Winter, Spring, Summer, Fall} {
		if e, ok := t.seasons[s]; ok {
			add(e)
		}
	}
	add(t.fallback)
	return refs
}

type dayEntryYAML struct {
	Month      int      `yaml:"month"`
	Day        int      `yaml:"day"`
	Label      string   `yaml:"label"`
	Tags       []string `yaml:"tags"`
	References []string `yaml:"references"`
}

type dayTableYAML struct {
	Dates   []dayEntryYAML          `yaml:"dates"`
	Months  []dayEntryYAML          `yaml:"months"`
	Seasons map[string]dayEntryYAML `yaml:"seasons"`
	Default dayEntryYAML            `yaml:"default"`
}

// daysIn uses a leap year so February 29 is accepted.
func daysIn(month time.Month) int {
	return time.Date(2024, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (e dayEntryYAML) toEntry(where string) (DayEntry, error) {
	if len(e.References) == 0 {
		return DayEntry{}, fmt.Errorf("%s has no references", where)
	}
	entry := DayEntry{Label: e.Label, Tags: e.Tags}
	for _, raw := range e.References {
		ref, err := bible.ParseReference(raw)
		if err != nil {
			return DayEntry{}, fmt.Errorf("%s: %w", where, err)
		}
		entry.References = append(entry.References, ref)
	}
	return entry, nil
}

// LoadDayTable reads a day table in YAML. Every reference must exist in the
// canon and the default entry must not be empty.
func LoadDayTable(r io.Reader) (*DayTable, error) {
	var raw dayTableYAML
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("yaml.Decode() > %w", err)
	}

	table := &DayTable{
		dates:   map[monthDay]DayEntry{},
		months:  map[time.Month]DayEntry{},
		seasons: map[Season]DayEntry{},
	}
	for _, d := range raw.Dates {
		month := time.Month(d.Month)
		if month < time.January || month > time.December || d.Day < 1 || d.Day > daysIn(month) {
			return nil, fmt.Errorf("invalid date %d-%d", d.Month, d.Day)
		}
		key := monthDay{month: month, day: d.Day}
		if _, dup := table.dates[key]; dup {
			return nil, fmt.Errorf("duplicate date %d-%d", d.Month, d.Day)
		}
		entry, err := d.toEntry(fmt.Sprintf("date %d-%d", d.Month, d.Day))
		if err != nil {
			return nil, err
		}
		table.dates[key] = entry
	}
	for _, m := range raw.Months {
		month := time.Month(m.Month)
		if month < time.January || month > time.December {
			return nil, fmt.Errorf("invalid month %d", m.Month)
		}
		entry, err := m.toEntry(fmt.Sprintf("month %d", m.Month))
		if err != nil {
			return nil, err
		}
		table.months[month] = entry
	}
	for name, s := range raw.Seasons {
		season := Season(name)
		if !slices.Contains([]Season{Winter, Spring, Summer, Fall}, season) {
			return nil, fmt.Errorf("unknown season %q", name)
		}
		entry, err := s.toEntry("season " + name)
		if err != nil {
			return nil, err
		}
		table.seasons[season] = entry
	}
	fallback, err := raw.Default.toEntry("default")
	if err != nil {
		return nil, err
	}
	if fallback.Label == "" {
		fallback.Label = "Verse of the Day"
	}
	table.fallback = fallback
	return table, nil
}

// LoadDayTableFile loads a day table from disk. An empty path returns the bundled table.
func LoadDayTableFile(path string) (*DayTable, error) {
	if path == "" {
		return DefaultDayTable(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()
	return LoadDayTable(f)
}

// DefaultDayTable returns the bundled table. It panics if the embedded file is broken.
func DefaultDayTable() *DayTable {
	table, err := LoadDayTable(bytes.NewReader(defaultEventsYAML))
	if err != nil {
		panic(fmt.Errorf("embedded day table: %w", err))
	}
	return table
}
