package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/rapidmidiex/pianoweb/internal/piano"
)

const (
	DefaultPort     = "8888"
	DefaultDebounce = 100 * time.Millisecond
)

// EnvFiles are read, when present, before the environment is consulted.
var EnvFiles = []string{"pianoweb.env", ".env"}

var (
	ErrInvalidPort     = errors.New("config: invalid port number")
	ErrInvalidDebounce = errors.New("config: invalid debounce duration")
	ErrInvalidMaxConn  = errors.New("config: invalid connection limit")
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type NotesConfig struct {
	// Debounce is the minimum time between two accepted events for one key.
	Debounce time.Duration
	// MaxConn caps connections to the relay, zero meaning unlimited.
	MaxConn uint
}

type Config struct {
	Server ServerConfig
	Notes  NotesConfig
	Demo   piano.Demo
	Dev    bool
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           DefaultPort,
			AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		},
		Notes: NotesConfig{
			Debounce: DefaultDebounce,
		},
		Demo: piano.Minigames,
	}
}

// LoadFromEnv reads the env files that exist and builds a Config from the
// environment on top of the defaults.
func LoadFromEnv() (*Config, error) {
	for _, f := range EnvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading %s: %w", f, err)
		}
	}

	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config from any key/value source shaped like os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) (*Config, error) {
	c := Default()

	if v, ok := lookup("PORT"); ok && v != "" {
		c.Server.Port = v
	}

	if v, ok := lookup("PIANO_ALLOWED_ORIGINS"); ok && v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}

	if v, ok := lookup("PIANO_DEMO"); ok {
		d, err := piano.ParseDemo(v)
		if err != nil {
			return nil, err
		}
		c.Demo = d
	}

	if v, ok := lookup("PIANO_DEBOUNCE"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDebounce, v)
		}
		c.Notes.Debounce = d
	}

	if v, ok := lookup("PIANO_MAX_CONN"); ok && v != "" {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMaxConn, v)
		}
		c.Notes.MaxConn = uint(n)
	}

	if v, ok := lookup("DEV"); ok && v != "" {
		dev, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("config: couldn't parse (bool) value from key [DEV]: %w", err)
		}
		c.Dev = dev
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	p, err := strconv.Atoi(c.Server.Port)
	if err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("%w: %q", ErrInvalidPort, c.Server.Port)
	}
	if _, err := piano.ParseDemo(string(c.Demo)); err != nil {
		return err
	}
	if c.Notes.Debounce < 0 {
		return ErrInvalidDebounce
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Server.Port }

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
