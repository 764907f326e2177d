package selector

import (
	"fmt"
	"strings"
)

// Mode decides whether verses follow the clock or the calendar.
type Mode string

const (
	ModeClock Mode = "clock"
	ModeDay   Mode = "day"
)

func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeClock, ModeDay:
		return m, nil
	}
	return "", fmt.Errorf("unknown mode %q, expected clock or day", s)
}

// Next rotates clock -> day -> clock.
func (m Mode) Next() Mode {
	if m == ModeDay {
		return ModeClock
	}
	return ModeDay
}

func (m Mode) DisplayName() string {
	if m == ModeDay {
		return "Day"
	}
	return "Clock"
}

// Version decides whether the secondary translation is shown beside KJV.
type Version string

const (
	KJVOnly      Version = "kjv_only"
	KJVAmplified Version = "kjv_amplified"
)

func ParseVersion(s string) (Version, error) {
	switch v := Version(strings.ToLower(strings.TrimSpace(s))); v {
	case KJVOnly, KJVAmplified:
		return v, nil
	}
	return "", fmt.Errorf("unknown version %q, expected kjv_only or kjv_amplified", s)
}

func (v Version) Toggle() Version {
	if v == KJVAmplified {
		return KJVOnly
	}
	return KJVAmplified
}

func (v Version) DisplayName() string {
	if v == KJVAmplified {
		return "KJV + Amplified"
	}
	return "KJV"
}
