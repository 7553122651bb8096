package note

import (
	"errors"
	"strings"
)

var (
	ErrUnknownNote  = errors.New("note: unknown note")
	ErrUnknownState = errors.New("note: unknown state")
	ErrMalformed    = errors.New("note: malformed event")
)

// Note is one key of the eight key touch piano. The zero value is a rest.
type Note int

const (
	Rest Note = iota

	C4
	D4
	E4
	F4
	G4
	A4
	B4
	C5
)

// All lists the playable notes from lowest to highest.
var All = []Note{C4, D4, E4, F4, G4, A4, B4, C5}

var names = [...]string{"", "c4", "d4", "e4", "f4", "g4", "a4", "b4", "c5"}

// computer keyboard bindings, same order as names
var bindings = [...]string{"", "a", "s", "d", "f", "g", "h", "j", "k"}

var midi = [...]int{0, 60, 62, 64, 65, 67, 69, 71, 72}

func (n Note) valid() bool { return n > Rest && n <= C5 }

func (n Note) IsRest() bool { return n == Rest }

func (n Note) String() string {
	if !n.valid() {
		return ""
	}
	return names[n]
}

// Label is the upper case name shown to players, e.g. "C4".
func (n Note) Label() string { return strings.ToUpper(n.String()) }

// Key returns the computer keyboard key bound to n.
func (n Note) Key() string {
	if !n.valid() {
		return ""
	}
	return bindings[n]
}

// MIDI returns the MIDI note number, C4 being 60.
func (n Note) MIDI() int {
	if !n.valid() {
		return 0
	}
	return midi[n]
}

// Parse accepts a note name in either case.
func Parse(s string) (Note, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i := 1; i < len(names); i++ {
		if names[i] == s {
			return Note(i), nil
		}
	}
	return Rest, ErrUnknownNote
}

// FromKey maps a computer keyboard key back to its note.
func FromKey(k string) (Note, bool) {
	k = strings.ToLower(k)
	for i := 1; i < len(bindings); i++ {
		if bindings[i] == k {
			return Note(i), true
		}
	}
	return Rest, false
}

// MarshalJSON encodes a rest as null.
func (n Note) MarshalJSON() ([]byte, error) {
	if !n.valid() {
		return []byte("null"), nil
	}
	return []byte(`"` + n.String() + `"`), nil
}

func (n *Note) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*n = Rest
		return nil
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return ErrUnknownNote
	}

	v, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*n = v
	return nil
}
