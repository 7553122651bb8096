package piano

import (
	"errors"
	"strings"
)

var ErrUnknownDemo = errors.New("piano: unknown demo, want minigames or training")

// Demo selects which practice page the site offers. Only one is routed.
type Demo string

const (
	Minigames Demo = "minigames"
	Training  Demo = "training"
)

func ParseDemo(s string) (Demo, error) {
	switch d := Demo(strings.ToLower(strings.TrimSpace(s))); d {
	case Minigames, Training:
		return d, nil
	case "":
		return Minigames, nil
	}
	return "", ErrUnknownDemo
}

func (d Demo) String() string { return string(d) }

// Page binds a route to the template rendered for it.
type Page struct {
	Route    string
	Template string
	Title    string
}

var (
	HomePage      = Page{"/", "index.html", "Web Piano Home"}
	PianoPage     = Page{"/piano", "piano.html", "ESP32 Web Piano"}
	TrainingPage  = Page{"/training", "training.html", "Piano Training"}
	MinigamesPage = Page{"/minigames", "minigames.html", "Piano Mini-Games"}
)

// Page is the practice page served for the demo.
func (d Demo) Page() Page {
	if d == Training {
		return TrainingPage
	}
	return MinigamesPage
}
