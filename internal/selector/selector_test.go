package selector

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/bibleclock/internal/bible"
	"github.com/at-ishikawa/bibleclock/internal/clock"
	mock_selector "github.com/at-ishikawa/bibleclock/internal/mocks/selector"
	"github.com/at-ishikawa/bibleclock/internal/resolver"
	"github.com/at-ishikawa/bibleclock/internal/verse"
)

var (
	john316 = bible.NewReference("John", 3, 16)
	psalm23 = bible.NewReference("Psalms", 23, 1)
	rom828  = bible.NewReference("Romans", 8, 28)
)

func newTestStore() *verse.Store {
	store := verse.NewStore()
	store.Put(john316, verse.KJV, "For God so loved the world")
	store.Put(psalm23, verse.KJV, "The LORD is my shepherd; I shall not want.")
	store.Put(psalm23, verse.Amplified, "The Lord is my Shepherd [to feed, to guide and to shield me], I shall not lack.")
	return store
}

func TestSelector_Select(t *testing.T) {
	tests := []struct {
		name        string
		candidates  []bible.Reference
		version     Version
		want        Payload
		wantErrIs   error
		wantRefOnly bool
	}{
		{
			name:       "kjv only",
			candidates: []bible.Reference{psalm23},
			version:    KJVOnly,
			want: Payload{
				Reference: psalm23,
				Label:     "Psalms 23:1",
				Text:      "The LORD is my shepherd; I shall not want.",
				Version:   KJVOnly,
			},
		},
		{
			name:       "amplified attached when present",
			candidates: []bible.Reference{psalm23},
			version:    KJVAmplified,
			want: Payload{
				Reference: psalm23,
				Label:     "Psalms 23:1",
				Text:      "The LORD is my shepherd; I shall not want.",
				AltText:   "The Lord is my Shepherd [to feed, to guide and to shield me], I shall not lack.",
				Version:   KJVAmplified,
			},
		},
		{
			name:       "amplified absent leaves alt text empty",
			candidates: []bible.Reference{john316},
			version:    KJVAmplified,
			want: Payload{
				Reference: john316,
				Label:     "John 3:16",
				Text:      "For God so loved the world.",
				Version:   KJVAmplified,
			},
		},
		{
			name:        "missing kjv text is a data integrity error",
			candidates:  []bible.Reference{rom828},
			version:     KJVOnly,
			wantErrIs:   verse.ErrNotFound,
			want:        Payload{Reference: rom828, Label: "Romans 8:28", Version: KJVOnly},
			wantRefOnly: true,
		},
		{
			name:       "empty candidates",
			candidates: nil,
			version:    KJVOnly,
			wantErrIs:  resolver.ErrResolutionExhausted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil, newTestStore(), NewRand(1))
			got, err := s.Select(tt.candidates, tt.version)
			if tt.wantErrIs != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErrIs)
				if tt.wantRefOnly {
					assert.Equal(t, tt.want, got)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.AltText != "", got.HasAltText())
		})
	}
}

func TestSelector_Select_Summary(t *testing.T) {
	s := New(nil, verse.NewStore(), NewRand(1))
	got, err := s.Select([]bible.Reference{bible.SummaryOf("Ruth")}, KJVAmplified)
	require.NoError(t, err)
	assert.Equal(t, "Book of Ruth Overview", got.Label)
	assert.NotEmpty(t, got.Text)
	assert.Empty(t, got.AltText)
}

func TestSelector_Select_Uniform(t *testing.T) {
	store := newTestStore()
	store.Put(rom828, verse.KJV, "And we know")
	s := New(nil, store, NewRand(42))

	candidates := []bible.Reference{john316, psalm23, rom828}
	counts := map[bible.Reference]int{}
	for range 3000 {
		p, err := s.Select(candidates, KJVOnly)
		require.NoError(t, err)
		counts[p.Reference]++
	}
	for _, ref := range candidates {
		assert.InDelta(t, 1000, counts[ref], 150, ref.String())
	}
}

func TestSelector_Select_SeedIsReproducible(t *testing.T) {
	candidates := []bible.Reference{john316, psalm23, bible.SummaryOf("John"), bible.SummaryOf("Ruth")}
	pick := func() []bible.Reference {
		s := New(nil, newTestStore(), NewRand(7))
		var refs []bible.Reference
		for range 20 {
			p, _ := s.Select(candidates, KJVOnly)
			refs = append(refs, p.Reference)
		}
		return refs
	}
	assert.Equal(t, pick(), pick())
}

func TestSelector_Modes(t *testing.T) {
	s := New(nil, verse.NewStore(), NewRand(1))
	require.Equal(t, ModeClock, s.Mode())
	require.Equal(t, KJVOnly, s.Version())

	assert.Equal(t, ModeDay, s.CycleMode())
	assert.Equal(t, ModeClock, s.CycleMode(), "two cycles return to the start")
	assert.Equal(t, ModeDay, s.CycleMode(), "three cycles do not")

	assert.Equal(t, KJVAmplified, s.ToggleVersion())
	assert.Equal(t, KJVOnly, s.ToggleVersion())

	s.SetMode(ModeClock)
	s.SetVersion(KJVAmplified)
	mode, version := s.State()
	assert.Equal(t, ModeClock, mode)
	assert.Equal(t, KJVAmplified, version)

	configured := New(nil, verse.NewStore(), NewRand(1), WithMode(ModeDay), WithVersion(KJVAmplified))
	assert.Equal(t, ModeDay, configured.Mode())
	assert.Equal(t, KJVAmplified, configured.Version())
}

func TestParseModeAndVersion(t *testing.T) {
	mode, err := ParseMode(" Day ")
	require.NoError(t, err)
	assert.Equal(t, ModeDay, mode)
	_, err = ParseMode("night")
	assert.Error(t, err)

	version, err := ParseVersion("KJV_AMPLIFIED")
	require.NoError(t, err)
	assert.Equal(t, KJVAmplified, version)
	_, err = ParseVersion("niv")
	assert.Error(t, err)
}

func TestSelector_Tick(t *testing.T) {
	at := func(hour, minute int) time.Time {
		return time.Date(2025, 12, 25, hour, minute, 0, 0, time.UTC)
	}

	t.Run("clock mode resolves the time", func(t *testing.T) {
		store := newTestStore()
		s := New(resolver.New(store.Index()), store, NewRand(1))

		got, err := s.Tick(at(15, 16))
		require.NoError(t, err)
		assert.Equal(t, john316, got.Reference)
		assert.Equal(t, ModeClock, got.Mode)
		assert.Equal(t, "3:16 PM", got.DisplayTime())
		assert.Empty(t, got.Description)
		assert.False(t, got.Placeholder)
	})

	t.Run("clock mode fallback is described", func(t *testing.T) {
		store := newTestStore()
		s := New(resolver.New(store.Index()), store, NewRand(1))

		got, err := s.Tick(at(3, 20))
		require.NoError(t, err)
		assert.Equal(t, john316, got.Reference)
		assert.Equal(t, "Nearest verse to 3:20", got.Description)
	})

	t.Run("summary label carries the hour", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		res := mock_selector.NewMockResolver(ctrl)
		res.EXPECT().ResolveClock(3, 0).Return(resolver.Resolution{
			Slot:       clock.Slot{Hour: 3},
			Candidates: []bible.Reference{bible.SummaryOf("John")},
		})
		s := New(res, verse.NewStore(), NewRand(1))

		got, err := s.Tick(at(15, 0))
		require.NoError(t, err)
		assert.Equal(t, "Book of John Overview (3:00)", got.Label)
	})

	t.Run("day mode uses the day label", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		res := mock_selector.NewMockResolver(ctrl)
		res.EXPECT().ResolveDay(at(9, 30)).Return(resolver.DayResolution{
			Tier:       resolver.TierDate,
			Label:      "Christmas Day",
			Candidates: []bible.Reference{psalm23},
		})
		s := New(res, newTestStore(), NewRand(1), WithMode(ModeDay), WithVersion(KJVAmplified))

		got, err := s.Tick(at(9, 30))
		require.NoError(t, err)
		assert.Equal(t, ModeDay, got.Mode)
		assert.Equal(t, "Christmas Day", got.Description)
		assert.Equal(t, "Thursday, December 25", got.DisplayTime())
		assert.True(t, got.HasAltText())
	})

	t.Run("missing text renders a placeholder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		res := mock_selector.NewMockResolver(ctrl)
		res.EXPECT().ResolveClock(8, 28).Return(resolver.Resolution{
			Slot:       clock.Slot{Hour: 8, Minute: 28},
			Candidates: []bible.Reference{rom828},
			Exact:      true,
		})
		s := New(res, newTestStore(), NewRand(1))

		got, err := s.Tick(at(8, 28))
		require.Error(t, err)
		assert.True(t, got.Placeholder)
		assert.Equal(t, PlaceholderText, got.Text)
		assert.Equal(t, "Romans 8:28", got.Label)
		assert.Equal(t, at(8, 28), got.Time)

		missing, ok := MissingReference(err)
		require.True(t, ok)
		assert.Equal(t, rom828, missing)
	})

	t.Run("exhausted resolution renders a placeholder", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		res := mock_selector.NewMockResolver(ctrl)
		res.EXPECT().ResolveClock(gomock.Any(), gomock.Any()).Return(resolver.Resolution{})
		s := New(res, newTestStore(), NewRand(1))

		got, err := s.Tick(at(1, 1))
		assert.ErrorIs(t, err, resolver.ErrResolutionExhausted)
		assert.True(t, got.Placeholder)
		_, ok := MissingReference(err)
		assert.False(t, ok)
	})
}

func TestSelector_Tick_EmbeddedData(t *testing.T) {
	store, _, err := verse.Open("", "")
	require.NoError(t, err)

	t.Run("every day table reference has text", func(t *testing.T) {
		for _, ref := range resolver.DefaultDayTable().References() {
			_, ok := store.Lookup(ref, verse.KJV)
			assert.True(t, ok, ref.String())
		}
	})

	t.Run("christmas", func(t *testing.T) {
		s := New(resolver.New(bible.KJV()), store, NewRand(3), WithMode(ModeDay))
		christmas := map[string]bool{"Luke 2:10-11": true, "Matthew 1:21": true, "Isaiah 9:6": true}
		for range 10 {
			got, err := s.Tick(time.Date(2025, 12, 25, 7, 0, 0, 0, time.UTC))
			require.NoError(t, err)
			assert.True(t, christmas[got.Label], got.Label)
			assert.Equal(t, "Christmas Day", got.Description)
		}
	})

	t.Run("clock mode never shows a placeholder over the dataset index", func(t *testing.T) {
		s := New(resolver.New(store.Index()), store, NewRand(3))
		for hour := 0; hour < 24; hour++ {
			for minute := 0; minute < 60; minute += 7 {
				got, err := s.Tick(time.Date(2025, 1, 1, hour, minute, 0, 0, time.UTC))
				require.NoError(t, err)
				assert.False(t, got.Placeholder)
			}
		}
	})
}

func TestPayload_Fingerprint(t *testing.T) {
	base := Payload{
		Reference: john316,
		Label:     "John 3:16",
		Text:      "For God so loved the world.",
		Mode:      ModeClock,
		Version:   KJVOnly,
		Time:      time.Date(2025, 1, 1, 15, 16, 10, 0, time.UTC),
	}
	same := base
	same.Time = base.Time.Add(30 * time.Second)
	assert.Equal(t, base.Fingerprint(), same.Fingerprint(), "seconds are not displayed")
	assert.Len(t, base.Fingerprint(), 32)

	changes := map[string]func(p *Payload){
		"text":        func(p *Payload) { p.Text = "Jesus wept." },
		"alt text":    func(p *Payload) { p.AltText = "x" },
		"mode":        func(p *Payload) { p.Mode = ModeDay },
		"version":     func(p *Payload) { p.Version = KJVAmplified },
		"minute":      func(p *Payload) { p.Time = p.Time.Add(time.Minute) },
		"placeholder": func(p *Payload) { p.Placeholder = true },
	}
	for name, change := range changes {
		changed := base
		change(&changed)
		assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint(), name)
	}
}

func TestPlaceholder(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	got := Placeholder(bible.Reference{}, ModeClock, KJVOnly, now, errors.New("boom"))
	assert.Equal(t, "", got.Label)
	assert.Equal(t, "boom", got.Error)
	assert.True(t, got.Placeholder)
}
