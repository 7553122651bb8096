package melody

import (
	"errors"

	"github.com/rapidmidiex/pianoweb/internal/note"
)

var ErrNotFound = errors.New("melody: not found")

// Descriptor is what the minigames page lists in its melody picker.
type Descriptor struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Melody struct {
	Descriptor
	Notes []note.Note `json:"notes"`
}

// Playable reports whether the melody has at least one note that is not a rest.
func (m Melody) Playable() bool {
	for _, n := range m.Notes {
		if !n.IsRest() {
			return true
		}
	}
	return false
}

// Catalog is an ordered, read only set of melodies.
type Catalog struct {
	ms []Melody
}

func NewCatalog(ms ...Melody) *Catalog {
	c := &Catalog{ms: make([]Melody, len(ms))}
	copy(c.ms, ms)
	return c
}

// Descriptors returns a fresh slice in insertion order.
func (c *Catalog) Descriptors() []Descriptor {
	ds := make([]Descriptor, 0, len(c.ms))
	for _, m := range c.ms {
		ds = append(ds, m.Descriptor)
	}
	return ds
}

func (c *Catalog) Lookup(id string) (Melody, error) {
	for _, m := range c.ms {
		if m.ID == id {
			notes := make([]note.Note, len(m.Notes))
			copy(notes, m.Notes)
			return Melody{m.Descriptor, notes}, nil
		}
	}
	return Melody{}, ErrNotFound
}

func (c *Catalog) Len() int { return len(c.ms) }
