package service

import (
	"bytes"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	h "github.com/hyphengolang/prelude/http"
	"github.com/rs/zerolog"
)

// Renderer expands a named page template with data.
type Renderer interface {
	Execute(w io.Writer, name string, data any) error
}

type Service interface {
	chi.Router

	Respond(http.ResponseWriter, *http.Request, any, int)
	RespondText(w http.ResponseWriter, r *http.Request, status int)
	Render(w http.ResponseWriter, r *http.Request, name string, data any)
}

type service struct {
	chi.Router

	l  zerolog.Logger
	tr Renderer
}

// Respond implements Service
func (*service) Respond(w http.ResponseWriter, r *http.Request, v any, status int) {
	h.Respond(w, r, v, status)
}

func (s *service) RespondText(w http.ResponseWriter, r *http.Request, status int) {
	s.Respond(w, r, http.StatusText(status), status)
}

// Render writes the page as text/html, or a bare 500 when the template fails.
func (s *service) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.tr == nil {
		s.l.Error().Str("page", name).Msg("no renderer configured")
		s.RespondText(w, r, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := s.tr.Execute(&buf, name, data); err != nil {
		s.l.Error().Err(err).Str("page", name).Msg("render failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.l.Warn().Err(err).Str("page", name).Msg("writing response")
	}
}

func New(opt ...Option) Service {
	s := service{l: zerolog.Nop()}
	for _, o := range opt {
		o(&s)
	}

	if s.Router == nil {
		s.Router = chi.NewRouter()
	}

	return &s
}

type Option func(*service)

func WithRouter(mux chi.Router) Option {
	return func(s *service) {
		s.Router = mux
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *service) {
		s.l = l
	}
}

func WithRenderer(tr Renderer) Option {
	return func(s *service) {
		s.tr = tr
	}
}
