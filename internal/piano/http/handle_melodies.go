package service

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rapidmidiex/pianoweb/internal/melody"
)

func (s *Service) handleListMelodies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mux.Respond(w, r, s.catalog.Descriptors(), http.StatusOK)
	}
}

func (s *Service) handleGetMelody() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m, err := s.catalog.Lookup(chi.URLParam(r, "id"))
		if errors.Is(err, melody.ErrNotFound) {
			s.mux.Respond(w, r, err.Error(), http.StatusNotFound)
			return
		}
		if err != nil {
			s.mux.RespondText(w, r, http.StatusInternalServerError)
			return
		}

		s.mux.Respond(w, r, m, http.StatusOK)
	}
}
