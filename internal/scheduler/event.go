package scheduler

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/at-ishikawa/bibleclock/internal/selector"
)

// ErrQueueFull is returned by Submit when the event queue has no room.
var ErrQueueFull = errors.New("event queue is full")

type EventKind string

const (
	EventCycleMode     EventKind = "cycle_mode"
	EventToggleVersion EventKind = "toggle_version"
	EventSetMode       EventKind = "set_mode"
	EventSetVersion    EventKind = "set_version"
	// EventRefresh recomputes the payload without changing state.
	EventRefresh EventKind = "refresh"
)

// Event is an input from a button, the control service or the backfiller.
type Event struct {
	ID          uuid.UUID
	Kind        EventKind
	Mode        selector.Mode
	Version     selector.Version
	Source      string
	SubmittedAt time.Time
}

func NewEvent(kind EventKind, source string) Event {
	return Event{
		ID:          uuid.New(),
		Kind:        kind,
		Source:      source,
		SubmittedAt: time.Now(),
	}
}

func SetModeEvent(mode selector.Mode, source string) Event {
	e := NewEvent(EventSetMode, source)
	e.Mode = mode
	return e
}

func SetVersionEvent(version selector.Version, source string) Event {
	e := NewEvent(EventSetVersion, source)
	e.Version = version
	return e
}
