// Package selector picks one verse among the resolved candidates and owns
// the display and version mode.
package selector

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/clock"
	"github.com/at-ishikawa/bibleclock/internal/resolver"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

//go:generate mockgen -source=selector.go -destination=../mocks/selector/mock_selector.go -package=mock_selector

// Resolver produces candidate references.
type Resolver interface {
	ResolveClock(hour, minute int) resolver.Resolution
	ResolveDay(date time.Time) resolver.DayResolution
}

// Selector is the only owner of the mode and version state.
type Selector struct {
	mu      sync.Mutex
	mode    Mode
	version Version
	rng     *rand.Rand

	resolver Resolver
	store    verse.Lookup
}

type Option func(*Selector)

func WithMode(mode Mode) Option {
	return func(s *Selector) {
		s.mode = mode
	}
}

func WithVersion(version Version) Option {
	return func(s *Selector) {
		s.version = version
	}
}

// NewRand returns a random source; seed 0 seeds from the current time.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
}

func New(res Resolver, store verse.Lookup, rng *rand.Rand, opts ...Option) *Selector {
	s := &Selector{
		mode:     ModeClock,
		version:  KJVOnly,
		rng:      rng,
		resolver: res,
		store:    store,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State reads mode and version together.
func (s *Selector) State() (Mode, Version) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode, s.version
}

func (s *Selector) Mode() Mode {
	mode, _ := s.State()
	return mode
}

func (s *Selector) Version() Version {
	_, version := s.State()
	return version
}

// CycleMode rotates clock -> day -> clock and returns the new mode.
func (s *Selector) CycleMode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = s.mode.Next()
	return s.mode
}

// ToggleVersion flips between KJV only and KJV with Amplified.
func (s *Selector) ToggleVersion() Version {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = s.version.Toggle()
	return s.version
}

func (s *Selector) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

func (s *Selector) SetVersion(version Version) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.version = version
}

func (s *Selector) pick(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(n)
}

// Select picks a candidate uniformly at random and looks up its text. A
// missing KJV text is an error; a missing Amplified text leaves AltText empty.
// On error the returned payload still carries the chosen reference.
func (s *Selector) Select(candidates []bible.Reference, version Version) (Payload, error) {
	if len(candidates) == 0 {
		return Payload{}, resolver.ErrResolutionExhausted
	}
	ref := candidates[s.pick(len(candidates))]
	payload := Payload{
		Reference: ref,
		Label:     ref.String(),
		Version:   version,
	}

	if ref.IsSummary() {
		text, ok := bible.Summary(ref.Book)
		if !ok {
			return payload, &verse.NotFoundError{Reference: ref, Translation: verse.KJV}
		}
		payload.Text = text
		return payload, nil
	}

	text, ok := s.store.Lookup(ref, verse.KJV)
	if !ok {
		return payload, &verse.NotFoundError{Reference: ref, Translation: verse.KJV}
	}
	payload.Text = verse.Clean(text)

	if version == KJVAmplified {
		if alt, ok := s.store.Lookup(ref, verse.Amplified); ok {
			payload.AltText = verse.Clean(alt)
		}
	}
	return payload, nil
}

// Tick computes the payload for a moment. Mode and version are read once
// up front. The returned payload is always displayable: on error it is a
// placeholder and the error says why.
func (s *Selector) Tick(now time.Time) (Payload, error) {
	mode, version := s.State()

	var (
		candidates  []bible.Reference
		description string
		slot        = clock.SlotOf(now)
	)
	switch mode {
	case ModeDay:
		day := s.resolver.ResolveDay(now)
		candidates = day.Candidates
		description = day.Label
	default:
		res := s.resolver.ResolveClock(slot.Hour, slot.Minute)
		if err := res.Validate(); err != nil {
			return Placeholder(resolver.BaseCase, mode, version, now, err), err
		}
		candidates = res.Candidates
		if !res.Exact && slot.Minute != 0 {
			description = fmt.Sprintf("Nearest verse to %s", slot)
		}
	}

	payload, err := s.Select(candidates, version)
	if err != nil {
		return Placeholder(payload.Reference, mode, version, now, err), err
	}
	payload.Mode = mode
	payload.Time = now
	payload.Description = description
	if mode == ModeClock && payload.Reference.IsSummary() {
		payload.Label = fmt.Sprintf("%s (%d:00)", payload.Reference, slot.Hour)
	}
	return payload, nil
}

// Placeholder is the payload shown when a lookup failed.
func Placeholder(ref bible.Reference, mode Mode, version Version, now time.Time, cause error) Payload {
	label := ""
	if ref.Book != "" {
		label = ref.String()
	}
	message := "unknown error"
	if cause != nil {
		message = cause.Error()
	}
	return Payload{
		Reference:   ref,
		Label:       label,
		Text:        PlaceholderText,
		Mode:        mode,
		Version:     version,
		Time:        now,
		Placeholder: true,
		Error:       message,
	}
}

// MissingReference returns the reference behind a data integrity error.
func MissingReference(err error) (bible.Reference, bool) {
	var notFound *verse.NotFoundError
	if !errors.As(err, &notFound) || notFound.Reference.IsSummary() {
		return bible.Reference{}, false
	}
	return notFound.Reference, true
}
