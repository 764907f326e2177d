package selector

import (
	"encoding/hex"
	"strings"
	"time"

	"github.com/zeebo/blake3"

	"github.com/at-ishikawa/bibleclock/internal/bible"
)

// PlaceholderText is shown when a verse could not be looked up.
const PlaceholderText = "Verse unavailable"

// Payload is everything the renderer needs for one screen.
type Payload struct {
	Reference bible.Reference
	// Label is the reference as displayed, e.g. "Book of John Overview (3:00)".
	Label   string
	Text    string
	AltText string
	Mode    Mode
	Version Version
	// Description is the day label in day mode and a fallback note in clock mode.
	Description string
	Time        time.Time
	Placeholder bool
	Error       string
}

// HasAltText reports whether the side by side layout applies.
func (p Payload) HasAltText() bool {
	return p.Version == KJVAmplified && p.AltText != ""
}

// DisplayTime is the time as printed on screen; day mode shows the date.
func (p Payload) DisplayTime() string {
	if p.Time.IsZero() {
		return ""
	}
	if p.Mode == ModeDay {
		return p.Time.Format("Monday, January 2")
	}
	return p.Time.Format("3:04 PM")
}

// Fingerprint hashes the visible content. Two payloads with the same
// fingerprint render the same image.
func (p Payload) Fingerprint() string {
	fields := []string{
		p.Label,
		p.Text,
		p.AltText,
		string(p.Mode),
		string(p.Version),
		p.Description,
		p.DisplayTime(),
	}
	if p.Placeholder {
		fields = append(fields, "placeholder")
	}
	sum := blake3.Sum256([]byte(strings.Join(fields, "\x00")))
	return hex.EncodeToString(sum[:16])
}
