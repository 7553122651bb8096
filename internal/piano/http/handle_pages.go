package service

import (
	"net/http"

	"github.com/rapidmidiex/pianoweb/internal/game"
	"github.com/rapidmidiex/pianoweb/internal/melody"
	"github.com/rapidmidiex/pianoweb/internal/note"
	"github.com/rapidmidiex/pianoweb/internal/piano"
)

// PageData is handed to every page template.
type PageData struct {
	Title string
	// Demo names the practice page linked from the navigation.
	Demo     string
	Keys     []note.Note
	Melodies []melody.Descriptor

	// Training is the melody played once every key has been learnt.
	Training melody.Descriptor
	Presses  int
}

func (s *Service) pageData(p piano.Page) PageData {
	return PageData{
		Title: p.Title,
		Demo:  s.demo.Page().Route[1:],
		Keys:  note.All,
	}
}

func (s *Service) handlePage(p piano.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mux.Render(w, r, p.Template, s.pageData(p))
	}
}

func (s *Service) handleMinigames(p piano.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(p)
		data.Melodies = s.catalog.Descriptors()

		s.mux.Render(w, r, p.Template, data)
	}
}

func (s *Service) handleTraining(p piano.Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := s.pageData(p)
		data.Presses = game.DefaultPresses
		if m, err := s.catalog.Lookup(melody.HappyBirthday.ID); err == nil {
			data.Training = m.Descriptor
		} else if ds := s.catalog.Descriptors(); len(ds) > 0 {
			data.Training = ds[0]
		}

		s.mux.Render(w, r, p.Template, data)
	}
}
