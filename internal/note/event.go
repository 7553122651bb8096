package note

import (
	"strings"
	"time"
)

type State int

const (
	Unknown State = iota

	On
	Off
)

func (s State) String() string {
	switch s {
	case On:
		return "on"
	case Off:
		return "off"

	default:
		return "unknown"
	}
}

// Event is a key press or release as sent by the keyboard device,
// written on the wire as "c4_on" or "c4_off".
type Event struct {
	Note  Note
	State State
}

func NoteOn(n Note) Event  { return Event{n, On} }
func NoteOff(n Note) Event { return Event{n, Off} }

func (e Event) String() string { return e.Note.String() + "_" + e.State.String() }

func ParseEvent(s string) (Event, error) {
	name, state, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok {
		return Event{}, ErrMalformed
	}

	n, err := Parse(name)
	if err != nil {
		return Event{}, err
	}

	switch strings.ToLower(state) {
	case "on":
		return NoteOn(n), nil
	case "off":
		return NoteOff(n), nil
	}
	return Event{}, ErrUnknownState
}

// Debouncer filters the event stream of one keyboard. A key must change
// state, and Delay must have passed since its last accepted event, for the
// next event to go through.
type Debouncer struct {
	Delay time.Duration

	pressed [len(names)]bool
	last    [len(names)]time.Time
}

func NewDebouncer(delay time.Duration) *Debouncer { return &Debouncer{Delay: delay} }

func (d *Debouncer) Accept(e Event, now time.Time) bool {
	if !e.Note.valid() || e.State == Unknown {
		return false
	}

	down := e.State == On
	if d.pressed[e.Note] == down {
		return false
	}

	if last := d.last[e.Note]; !last.IsZero() && now.Sub(last) <= d.Delay {
		return false
	}

	d.pressed[e.Note] = down
	d.last[e.Note] = now
	return true
}
