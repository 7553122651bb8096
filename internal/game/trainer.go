package game

import (
	"github.com/rapidmidiex/pianoweb/internal/melody"
	"github.com/rapidmidiex/pianoweb/internal/note"
)

// DefaultPresses is how many times each key is pressed during basic training.
const DefaultPresses = 3

type Phase int

const (
	Basic Phase = iota
	Song
	Finished
)

func (p Phase) String() string {
	switch p {
	case Basic:
		return "basic"
	case Song:
		return "melody"
	case Finished:
		return "finished"

	default:
		return "unknown"
	}
}

// Trainer walks a player through every key, Presses times each, and then
// through a melody.
type Trainer struct {
	Presses int

	phase Phase
	key   int
	count int
	song  *Game
}

func NewTrainer(m melody.Melody, presses int) *Trainer {
	if presses <= 0 {
		presses = DefaultPresses
	}
	return &Trainer{Presses: presses, song: New(m)}
}

func (t *Trainer) Phase() Phase { return t.phase }

// Target is the key the player should press next.
func (t *Trainer) Target() note.Note {
	switch t.phase {
	case Basic:
		return note.All[t.key]
	case Song:
		return t.song.Next()
	}
	return note.Rest
}

// Progress reports the current press count and how many are required.
// Outside the basic phase both values are zero.
func (t *Trainer) Progress() (int, int) {
	if t.phase != Basic {
		return 0, 0
	}
	return t.count, t.Presses
}

func (t *Trainer) Melody() melody.Descriptor { return t.song.Melody() }

// Press feeds one key press. A wrong key never resets the press count.
func (t *Trainer) Press(n note.Note) (bool, error) {
	switch t.phase {
	case Basic:
		if n != note.All[t.key] {
			return false, nil
		}

		t.count++
		if t.count < t.Presses {
			return true, nil
		}

		t.key, t.count = t.key+1, 0
		if t.key < len(note.All) {
			return true, nil
		}

		t.key = 0
		if _, err := t.song.Start(); err != nil {
			t.phase = Finished
			return true, err
		}
		t.phase = Song
		return true, nil

	case Song:
		res, err := t.song.Press(n)
		if err != nil {
			return false, err
		}
		if res.Done {
			t.phase = Finished
		}
		return res.Correct, nil
	}

	return false, ErrNotPlaying
}
