// Package game holds the rules of the practice modes: following a melody
// note by note, and the basic key training that precedes it.
package game

import (
	"errors"

	"github.com/rapidmidiex/pianoweb/internal/melody"
	"github.com/rapidmidiex/pianoweb/internal/note"
)

var (
	ErrEmptyMelody = errors.New("game: melody has no playable notes")
	ErrNotPlaying  = errors.New("game: no game in progress")
)

// Result describes the outcome of a single key press.
type Result struct {
	Correct  bool
	Expected note.Note
	// Next is the note to play now, a rest once the melody is done.
	Next note.Note
	Done bool
}

// Game is a follow-the-melody round. Rests are skipped automatically.
type Game struct {
	m   melody.Melody
	pos int

	playing  bool
	score    int
	mistakes int
}

func New(m melody.Melody) *Game { return &Game{m: m} }

// Start resets the round and returns the first note to play.
func (g *Game) Start() (note.Note, error) {
	g.pos, g.score, g.mistakes = 0, 0, 0
	if !g.m.Playable() {
		g.playing = false
		return note.Rest, ErrEmptyMelody
	}

	g.skipRests()
	g.playing = true
	return g.m.Notes[g.pos], nil
}

func (g *Game) Press(n note.Note) (Result, error) {
	if !g.playing {
		return Result{}, ErrNotPlaying
	}

	expected := g.m.Notes[g.pos]
	if n != expected {
		g.mistakes++
		return Result{Expected: expected, Next: expected}, nil
	}

	g.score++
	g.pos++
	g.skipRests()

	if g.pos >= len(g.m.Notes) {
		g.playing = false
		return Result{Correct: true, Expected: expected, Done: true}, nil
	}

	return Result{Correct: true, Expected: expected, Next: g.m.Notes[g.pos]}, nil
}

func (g *Game) skipRests() {
	for g.pos < len(g.m.Notes) && g.m.Notes[g.pos].IsRest() {
		g.pos++
	}
}

// Next is the note currently expected, a rest when no round is running.
func (g *Game) Next() note.Note {
	if !g.playing {
		return note.Rest
	}
	return g.m.Notes[g.pos]
}

func (g *Game) Melody() melody.Descriptor { return g.m.Descriptor }
func (g *Game) Playing() bool             { return g.playing }
func (g *Game) Score() int                { return g.score }
func (g *Game) Mistakes() int             { return g.mistakes }
