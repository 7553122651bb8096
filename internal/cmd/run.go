package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/rapidmidiex/pianoweb/internal/cmd/config"
	"github.com/rapidmidiex/pianoweb/internal/http/websocket"
	"github.com/rapidmidiex/pianoweb/internal/piano"
	pianoHTTP "github.com/rapidmidiex/pianoweb/internal/piano/http"
)

func run(dev bool) func(cCtx *cli.Context) error {
	return func(cCtx *cli.Context) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}

		if err := applyFlags(cCtx, cfg); err != nil {
			return err
		}
		cfg.Dev = cfg.Dev || dev

		return serve(cfg)
	}
}

func applyFlags(cCtx *cli.Context, cfg *config.Config) error {
	if port := cCtx.Int("port"); port != 0 {
		if port < 0 {
			return config.ErrInvalidPort
		}
		cfg.Server.Port = strconv.Itoa(port)
	}

	if cCtx.IsSet("demo") {
		d, err := piano.ParseDemo(cCtx.String("demo"))
		if err != nil {
			return err
		}
		cfg.Demo = d
	}

	return cfg.Validate()
}

func newLogger(cfg *config.Config) zerolog.Logger {
	opts := httplog.Options{Concise: cfg.Dev, JSON: !cfg.Dev, LogLevel: "info"}
	if cfg.Dev {
		opts.LogLevel = "debug"
	}
	return httplog.NewLogger("pianoweb", opts)
}

// Handler builds the full HTTP stack for cfg.
func Handler(cfg *config.Config, logger zerolog.Logger, hub *websocket.Hub) http.Handler {
	c := cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept"},
		Debug:            cfg.Dev,
	}

	mux := chi.NewMux()
	mux.Use(middleware.RequestID)
	mux.Use(httplog.RequestLogger(logger))
	mux.Mount("/", pianoHTTP.New(
		pianoHTTP.WithDemo(cfg.Demo),
		pianoHTTP.WithNotes(hub),
		pianoHTTP.WithLogger(logger),
	))

	return cors.New(c).Handler(mux)
}

func newHub(cfg *config.Config, logger zerolog.Logger) *websocket.Hub {
	return websocket.NewHub(
		websocket.WithLogger(logger.With().Str("component", "notes").Logger()),
		websocket.WithCapacity(cfg.Notes.MaxConn),
		websocket.WithDebounce(cfg.Notes.Debounce),
		websocket.WithOrigins(cfg.Server.AllowedOrigins...),
	)
}

func serve(cfg *config.Config) error {
	sCtx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	logger := newLogger(cfg)

	hub := newHub(cfg, logger)
	defer hub.Close()

	srv := http.Server{
		Addr:    cfg.Addr(),
		Handler: Handler(cfg, logger, hub),
		// max time to read request from the client
		ReadTimeout: 10 * time.Second,
		// max time to write response to the client
		WriteTimeout: 10 * time.Second,
		// max time for connections using TCP Keep-Alive
		IdleTimeout: 120 * time.Second,
		BaseContext: func(_ net.Listener) context.Context { return sCtx },
	}

	g, gCtx := errgroup.WithContext(sCtx)

	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("demo", cfg.Demo.String()).Bool("dev", cfg.Dev).Msg("pianoweb server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		hub.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	})

	return g.Wait()
}
