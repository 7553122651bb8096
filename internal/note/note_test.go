package note_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hyphengolang/prelude/testing/is"
	"github.com/rapidmidiex/pianoweb/internal/note"
)

func TestParse(t *testing.T) {
	is := is.New(t)

	n, err := note.Parse("C4")
	is.NoErr(err)        // upper case accepted
	is.Equal(n, note.C4) // parsed note

	_, err = note.Parse("c6")
	is.Equal(err, note.ErrUnknownNote) // out of range

	for _, n := range note.All {
		v, err := note.Parse(n.String())
		is.NoErr(err)
		is.Equal(v, n)
	}
}

func TestKeys(t *testing.T) {
	is := is.New(t)

	is.Equal(note.C4.Key(), "a")
	is.Equal(note.C5.Key(), "k")
	is.Equal(note.A4.MIDI(), 69)
	is.Equal(note.B4.Label(), "B4")

	n, ok := note.FromKey("G")
	is.True(ok)
	is.Equal(n, note.G4)

	_, ok = note.FromKey("z")
	is.True(!ok) // unbound key
}

func TestParseEvent(t *testing.T) {
	tt := []struct {
		in   string
		want note.Event
		err  error
	}{
		{"c4_on", note.NoteOn(note.C4), nil},
		{"c5_off", note.NoteOff(note.C5), nil},
		{" a4_ON\n", note.NoteOn(note.A4), nil},
		{"c4", note.Event{}, note.ErrMalformed},
		{"x9_on", note.Event{}, note.ErrUnknownNote},
		{"d4_up", note.Event{}, note.ErrUnknownState},
	}

	for _, tc := range tt {
		t.Run(tc.in, func(t *testing.T) {
			is := is.New(t)

			e, err := note.ParseEvent(tc.in)
			is.Equal(err, tc.err)
			is.Equal(e, tc.want)
		})
	}

	is := is.New(t)
	is.Equal(note.NoteOff(note.F4).String(), "f4_off")
}

func TestJSON(t *testing.T) {
	is := is.New(t)

	b, err := json.Marshal([]note.Note{note.C4, note.Rest, note.E4})
	is.NoErr(err)
	is.Equal(string(b), `["c4",null,"e4"]`)

	var ns []note.Note
	is.NoErr(json.Unmarshal(b, &ns))
	is.Equal(ns, []note.Note{note.C4, note.Rest, note.E4})
}

func TestDebouncer(t *testing.T) {
	is := is.New(t)

	d := note.NewDebouncer(100 * time.Millisecond)
	t0 := time.Now()

	is.True(!d.Accept(note.NoteOff(note.C4), t0))                          // release without press
	is.True(d.Accept(note.NoteOn(note.C4), t0))                            // first press
	is.True(!d.Accept(note.NoteOn(note.C4), t0.Add(time.Second)))          // already down
	is.True(!d.Accept(note.NoteOff(note.C4), t0.Add(50*time.Millisecond))) // bounce
	is.True(d.Accept(note.NoteOff(note.C4), t0.Add(150*time.Millisecond))) // release
	is.True(d.Accept(note.NoteOn(note.D4), t0.Add(150*time.Millisecond)))  // keys are independent
	is.True(!d.Accept(note.Event{Note: note.E4}, t0))                      // unknown state
}
