package game_test

import (
	"testing"

	"github.com/hyphengolang/prelude/testing/is"
	"github.com/rapidmidiex/pianoweb/internal/game"
	"github.com/rapidmidiex/pianoweb/internal/melody"
	"github.com/rapidmidiex/pianoweb/internal/note"
)

var scale = melody.Melody{
	Descriptor: melody.Descriptor{ID: "scale", Name: "Scale"},
	Notes:      []note.Note{note.Rest, note.C4, note.Rest, note.Rest, note.D4, note.E4, note.Rest},
}

func TestGame(t *testing.T) {
	is := is.New(t)

	g := game.New(scale)

	_, err := g.Press(note.C4)
	is.Equal(err, game.ErrNotPlaying) // not started

	first, err := g.Start()
	is.NoErr(err)
	is.Equal(first, note.C4) // leading rest skipped
	is.True(g.Playing())

	res, err := g.Press(note.G4)
	is.NoErr(err)
	is.True(!res.Correct)
	is.Equal(res.Expected, note.C4)
	is.Equal(g.Next(), note.C4) // position unchanged after a mistake
	is.Equal(g.Mistakes(), 1)

	res, err = g.Press(note.C4)
	is.NoErr(err)
	is.True(res.Correct)
	is.Equal(res.Next, note.D4) // rests between notes skipped

	_, _ = g.Press(note.D4)
	res, err = g.Press(note.E4)
	is.NoErr(err)
	is.True(res.Done) // trailing rest does not need a press
	is.True(!g.Playing())
	is.Equal(g.Score(), 3)
	is.Equal(g.Next(), note.Rest)

	_, err = g.Press(note.E4)
	is.Equal(err, game.ErrNotPlaying) // finished
}

func TestGameRestart(t *testing.T) {
	is := is.New(t)

	g := game.New(scale)
	_, _ = g.Start()
	_, _ = g.Press(note.A4)
	_, _ = g.Press(note.C4)

	n, err := g.Start()
	is.NoErr(err)
	is.Equal(n, note.C4)
	is.Equal(g.Score(), 0)
	is.Equal(g.Mistakes(), 0)
}

func TestGameEmptyMelody(t *testing.T) {
	is := is.New(t)

	for _, m := range []melody.Melody{
		{},
		{Notes: []note.Note{note.Rest}},
		{Notes: []note.Note{note.Rest, note.Rest, note.Rest}},
	} {
		g := game.New(m)

		n, err := g.Start()
		is.Equal(err, game.ErrEmptyMelody)
		is.Equal(n, note.Rest)
		is.True(!g.Playing())
		is.Equal(m.Playable(), false)
	}

	// leading rests are skipped once the melody is playable
	g := game.New(melody.Melody{Notes: []note.Note{note.Rest, note.Rest, note.E4}})
	n, err := g.Start()
	is.NoErr(err)
	is.Equal(n, note.E4)
}

func TestGameCatalogMelodies(t *testing.T) {
	c := melody.Default()

	for _, d := range c.Descriptors() {
		t.Run(d.ID, func(t *testing.T) {
			is := is.New(t)

			m, err := c.Lookup(d.ID)
			is.NoErr(err)

			g := game.New(m)
			n, err := g.Start()
			is.NoErr(err)

			presses := 0
			for g.Playing() {
				res, err := g.Press(n)
				is.NoErr(err)
				is.True(res.Correct)
				n = res.Next
				presses++
			}

			want := 0
			for _, n := range m.Notes {
				if !n.IsRest() {
					want++
				}
			}
			is.Equal(presses, want)
			is.Equal(g.Score(), want)
		})
	}
}
