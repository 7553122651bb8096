package melody

import "github.com/rapidmidiex/pianoweb/internal/note"

const (
	__ = note.Rest

	c4 = note.C4
	d4 = note.D4
	e4 = note.E4
	f4 = note.F4
	g4 = note.G4
	a4 = note.A4
	b4 = note.B4
	c5 = note.C5
)

var HappyBirthday = Melody{
	Descriptor: Descriptor{ID: "happy_birthday", Name: "Happy Birthday"},
	Notes: []note.Note{
		c4, c4, d4, c4, f4, e4, __,
		c4, c4, d4, c4, g4, f4, __,
		c4, c4, c5, a4, f4, e4, d4, __,
		b4, b4, a4, f4, g4, f4, __,
	},
}

var JingleBells = Melody{
	Descriptor: Descriptor{ID: "jingle_bells", Name: "Jingle Bells"},
	Notes: []note.Note{
		e4, e4, e4, __, e4, e4, e4, __,
		e4, g4, c4, d4, e4, __, __,
		f4, f4, f4, f4, f4, e4, e4, e4,
		e4, d4, d4, e4, d4, __, g4, __,
		e4, e4, e4, __, e4, e4, e4, __,
		e4, g4, c4, d4, e4, __, __,
		f4, f4, f4, f4, f4, e4, e4, e4,
		g4, g4, f4, d4, c4, __, __,
	},
}

// Default holds the melodies offered by the minigames page.
func Default() *Catalog { return NewCatalog(HappyBirthday, JingleBells) }
