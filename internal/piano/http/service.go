package service

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rapidmidiex/pianoweb/html"
	service "github.com/rapidmidiex/pianoweb/internal/http"
	"github.com/rapidmidiex/pianoweb/internal/melody"
	"github.com/rapidmidiex/pianoweb/internal/piano"
	"github.com/rapidmidiex/pianoweb/static"
)

type Option func(*Service)

func WithDemo(d piano.Demo) Option {
	return func(s *Service) { s.demo = d }
}

func WithCatalog(c *melody.Catalog) Option {
	return func(s *Service) { s.catalog = c }
}

// WithRenderer swaps the embedded page templates for r.
func WithRenderer(r service.Renderer) Option {
	return func(s *Service) { s.tr = r }
}

// WithNotes mounts the note relay on /ws.
func WithNotes(hub http.Handler) Option {
	return func(s *Service) { s.hub = hub }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Service) { s.l = l }
}

// Service serves the piano site.
type Service struct {
	mux service.Service

	demo    piano.Demo
	catalog *melody.Catalog
	hub     http.Handler
	tr      service.Renderer
	l       zerolog.Logger
}

func New(opts ...Option) *Service {
	s := Service{
		demo:    piano.Minigames,
		catalog: melody.Default(),
		tr:      html.Renderer{},
		l:       zerolog.Nop(),
	}

	for _, o := range opts {
		o(&s)
	}

	s.mux = service.New(
		service.WithRouter(chi.NewRouter()),
		service.WithLogger(s.l),
		service.WithRenderer(s.tr),
	)
	s.routes()
	return &s
}

func (s *Service) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Service) routes() {
	s.mux.Use(middleware.Recoverer)
	s.mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		s.mux.RespondText(w, r, http.StatusNotFound)
	})

	s.mux.Get(piano.HomePage.Route, s.handlePage(piano.HomePage))
	s.mux.Get(piano.PianoPage.Route, s.handlePage(piano.PianoPage))

	switch p := s.demo.Page(); s.demo {
	case piano.Training:
		s.mux.Get(p.Route, s.handleTraining(p))
	default:
		s.mux.Get(p.Route, s.handleMinigames(p))
	}

	s.mux.Handle("/assets/*", &static.Static{Prefix: "/assets/"})
	s.mux.Get("/ping", s.handlePing())

	if s.hub != nil {
		s.mux.Handle("/ws", s.hub)
	}

	s.mux.Route("/api/v1/melodies", func(r chi.Router) {
		r.Get("/", s.handleListMelodies())
		r.Get("/{id}", s.handleGetMelody())
	})
}

func (s *Service) handlePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}
}
