// Package resolver maps a clock slot or a calendar date to the scripture
// references eligible for display.
//
// The hour is read as a chapter and the minute as a verse. When no book has
// that chapter and verse the lookup is relaxed step by step until a match is
// found, ending at Genesis 1:1, so a resolution is never empty.
package resolver

import (
	"errors"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/clock"
)

// Index answers which verses exist.
type Index interface {
	Books() []string
	HasVerse(book string, chapter, verse int) bool
}

// ErrResolutionExhausted marks a resolution without candidates. It cannot
// happen unless the fallback chain is broken.
var ErrResolutionExhausted = errors.New("resolution exhausted without a candidate")

// FallbackOrder selects which relaxation is tried first when a slot has no
// exact match.
type FallbackOrder string

const (
	// VerseFirst lowers the verse within the same chapter before moving to lower chapters.
	VerseFirst FallbackOrder = "verse_first"
	// ChapterFirst keeps the verse and lowers the chapter before lowering verses.
	ChapterFirst FallbackOrder = "chapter_first"
)

func (o FallbackOrder) Valid() bool {
	return o == VerseFirst || o == ChapterFirst
}

type StepKind string

const (
	StepExact        StepKind = "exact"
	StepOpeningVerse StepKind = "opening_verse"
	StepLowerVerse   StepKind = "lower_verse"
	StepLowerChapter StepKind = "lower_chapter"
	StepBaseCase     StepKind = "base_case"
)

// Step is one probe of the fallback chain.
type Step struct {
	Kind    StepKind
	Chapter int
	Verse   int
	Matches int
}

// BaseCase is returned when every relaxation misses.
var BaseCase = bible.NewReference("Genesis", 1, 1)

// Resolution is the outcome of a clock lookup.
type Resolution struct {
	Slot       clock.Slot
	Candidates []bible.Reference
	Steps      []Step
	Exact      bool
}

// Matched returns the step that produced the verse candidates.
func (r Resolution) Matched() Step {
	if len(r.Steps) == 0 {
		return Step{}
	}
	return r.Steps[len(r.Steps)-1]
}

func (r Resolution) Summaries() []bible.Reference {
	var refs []bible.Reference
	for _, ref := range r.Candidates {
		if ref.IsSummary() {
			refs = append(refs, ref)
		}
	}
	return refs
}

func (r Resolution) Validate() error {
	if len(r.Candidates) == 0 {
		return ErrResolutionExhausted
	}
	return nil
}

type Resolver struct {
	index Index
	order FallbackOrder
	days  *DayTable
}

type Option func(*Resolver)

func WithFallbackOrder(order FallbackOrder) Option {
	return func(r *Resolver) {
		if order.Valid() {
			r.order = order
		}
	}
}

func WithDayTable(table *DayTable) Option {
	return func(r *Resolver) {
		if table != nil {
			r.days = table
		}
	}
}

// New returns a resolver over the index, with the bundled day table unless
// one is given.
func New(index Index, opts ...Option) *Resolver {
	r := &Resolver{
		index: index,
		order: VerseFirst,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.days == nil {
		r.days = DefaultDayTable()
	}
	return r
}

func (r *Resolver) FallbackOrder() FallbackOrder {
	return r.order
}

func (r *Resolver) DayTable() *DayTable {
	return r.days
}

// MaxSteps bounds the probes of one clock resolution.
func MaxSteps(slot clock.Slot) int {
	return slot.Hour*max(slot.Minute, 1) + 3
}

// ResolveClock returns the candidates for an hour (chapter) and minute (verse).
// Out of range input is folded onto the dial first. At minute 0 every book
// summary is appended after the verse candidates.
func (r *Resolver) ResolveClock(hour, minute int) Resolution {
	slot := clock.Normalize(hour, minute)
	p := &prober{index: r.index}

	var found bool
	if found = p.probe(StepExact, slot.Hour, slot.Minute); !found && slot.Minute == 0 {
		found = p.probe(StepOpeningVerse, slot.Hour, 1)
	}
	exact := found && p.steps[0].Matches > 0

	if !found {
		switch r.order {
		case ChapterFirst:
			found = p.lowerChapters(slot.Hour, slot.Minute, false) || p.lowerVerses(slot.Hour, slot.Minute, true)
		default:
			found = p.lowerVerses(slot.Hour, slot.Minute, false) || p.lowerChapters(slot.Hour, slot.Minute, true)
		}
	}
	if !found {
		p.steps = append(p.steps, Step{Kind: StepBaseCase, Chapter: BaseCase.Chapter, Verse: BaseCase.Verse, Matches: 1})
		p.candidates = []bible.Reference{BaseCase}
	}

	candidates := p.candidates
	if slot.Minute == 0 {
		for _, book := range bible.KJV().Books() {
			candidates = append(candidates, bible.SummaryOf(book))
		}
	}
	return Resolution{
		Slot:       slot,
		Candidates: candidates,
		Steps:      p.steps,
		Exact:      exact,
	}
}

type prober struct {
	index      Index
	steps      []Step
	candidates []bible.Reference
}

func (p *prober) probe(kind StepKind, chapter, verse int) bool {
	var matches []bible.Reference
	for _, book := range p.index.Books() {
		if p.index.HasVerse(book, chapter, verse) {
			matches = append(matches, bible.NewReference(book, chapter, verse))
		}
	}
	p.steps = append(p.steps, Step{Kind: kind, Chapter: chapter, Verse: verse, Matches: len(matches)})
	if len(matches) == 0 {
		return false
	}
	p.candidates = matches
	return true
}

// lowerVerses scans verses below the minute. With allChapters it walks
// every chapter from hour down to 1; otherwise only the hour's chapter.
func (p *prober) lowerVerses(hour, minute int, allChapters bool) bool {
	lowest := hour
	if allChapters {
		lowest = 1
	}
	for chapter := hour; chapter >= lowest; chapter-- {
		for verse := minute - 1; verse >= 1; verse-- {
			if p.probe(StepLowerVerse, chapter, verse) {
				return true
			}
		}
	}
	return false
}

// lowerChapters scans chapters below the hour. With allVerses it walks
// every verse from the minute down to 1 in each chapter; otherwise only the
// minute itself.
func (p *prober) lowerChapters(hour, minute int, allVerses bool) bool {
	top := max(minute, 1)
	lowest := top
	if allVerses {
		lowest = 1
	}
	for chapter := hour - 1; chapter >= 1; chapter-- {
		for verse := top; verse >= lowest; verse-- {
			if p.probe(StepLowerChapter, chapter, verse) {
				return true
			}
		}
	}
	return false
}
